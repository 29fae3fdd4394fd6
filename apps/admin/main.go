package main

import (
	"log"
	"os"

	"github.com/tutorpad/tutorpad/core"
	"github.com/tutorpad/tutorpad/core/user"
	emailsvc "github.com/tutorpad/tutorpad/services/email"
	boltkv "github.com/tutorpad/tutorpad/storage/kv/bolt"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up store
	store, err := boltkv.Open(conf.Store.Path)
	errAndDie(err)
	defer store.Close()

	// start CLI
	cli := commandLine{
		usrSvc: user.NewService(store, emailsvc.NewConsoleService(conf), conf),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
