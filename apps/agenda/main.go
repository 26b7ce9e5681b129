package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/session"
	logsvc "github.com/trezcool/agenda/services/logger"
	inmemdb "github.com/trezcool/agenda/storage/database/inmem"
)

var logger *logsvc.RollbarLogger

func main() {
	defer os.Exit(0)

	conf := core.NewConfig()
	logger = logsvc.NewRollbarLogger(log.New(os.Stderr, "AGENDA : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)
	logger.Enable(!conf.Debug)

	// set up DB
	db, err := inmemdb.Open()
	errAndDie(err)

	auth, err := session.NewDemoAuthenticator(inmemdb.NewIdentityRepository(db))
	errAndDie(err)

	// start CLI
	cli := commandLine{
		sessions: session.NewStore(auth, conf.Session.LoginLatency, quietLogger{logger}),
		logger:   quietLogger{logger},
		out:      os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

// quietLogger drops debug and info logs so they do not garble the terminal output.
type quietLogger struct {
	core.Logger
}

func (quietLogger) Debug(string, ...interface{}) {}
func (quietLogger) Info(string, ...interface{})  {}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(fmt.Sprintf("%v", err), err)
	}
}
