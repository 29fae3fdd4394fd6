package user

import "encoding/base64"

// Passwords are stored base64-obfuscated, NOT hashed. This mirrors the
// platform's demo-grade scheme: login compares the same reversible transform,
// so hardening it would change externally observable behavior. Known,
// deliberate technical debt; do not treat as a security boundary.

func ObfuscatePassword(pwd string) string {
	return base64.StdEncoding.EncodeToString([]byte(pwd))
}

func CheckPassword(pwd, stored string) bool {
	return ObfuscatePassword(pwd) == stored
}
