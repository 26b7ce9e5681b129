package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"syscall"

	"golang.org/x/term"

	"github.com/trezcool/agenda/core"
	"github.com/trezcool/agenda/core/route"
	"github.com/trezcool/agenda/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	sessions *session.Store
	logger   core.Logger
	out      io.Writer
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -name NAME - log in as 'student' or 'teacher' and show your screens")
	fmt.Fprintln(cli.out, "  route            - show the screens of a logged out session")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
	loginName := loginCmd.String("name", "", "The user name: 'student' or 'teacher'. The password will be prompted next.")

	switch args[1] {
	case "login":
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *loginName == "" {
			loginCmd.Usage()
			return errHelp
		}
		return cli.login(*loginName)
	case "route":
		return cli.route()
	default:
		cli.printUsage()
		return errHelp
	}
}

// hosted runs fn against a fresh session whose Destination is mounted on the terminal.
// fn is called once the initial Destination is shown.
func (cli *commandLine) hosted(fn func(h *session.Handle, mounter *terminalMounter) error) error {
	h := cli.sessions.New()
	defer func() { _ = cli.sessions.Drop(h.ID) }()

	mounter := newTerminalMounter(cli.out)
	host := route.NewHost(h, mounter, cli.logger)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- host.Run(ctx) }()

	<-mounter.Mounted()
	err := fn(h, mounter)

	cancel()
	if runErr := <-done; runErr != nil && runErr != context.Canceled {
		return runErr
	}
	return err
}

func (cli *commandLine) login(name string) error {
	return cli.hosted(func(h *session.Handle, mounter *terminalMounter) error {
		fmt.Fprint(cli.out, "Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}

		fmt.Fprintln(cli.out, "Logging in...")
		ident, err := h.Login(context.Background(), name, string(pwd))
		if err != nil {
			return err
		}

		<-mounter.Mounted()
		fmt.Fprintf(cli.out, "Welcome, %s\n", ident.DisplayName)
		return nil
	})
}

func (cli *commandLine) route() error {
	return cli.hosted(func(*session.Handle, *terminalMounter) error { return nil })
}
