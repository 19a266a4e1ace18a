package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/sitelog/internal/cli"
	"github.com/terraincognita07/sitelog/internal/config"
)

const usage = `usage:
  sitelog                              start the HTTP server
  sitelog reset-password <email>       print a new temporary password
  sitelog create-user <email> <name>   create an account, password read from the terminal`

var errUsage = errors.New(usage)

type commandRunners struct {
	resetPassword func(dbPath string, email string) error
	createUser    func(dbPath string, email string, name string) error
}

var defaultRunners = commandRunners{
	resetPassword: cli.RunResetPasswordCommand,
	createUser:    cli.RunCreateUserCommand,
}

func runCommand(args []string) error {
	return dispatchCommand(args, config.DatabasePath, defaultRunners)
}

func dispatchCommand(args []string, dbPath func() (string, error), runners commandRunners) error {
	if len(args) == 0 {
		return errUsage
	}

	switch args[0] {
	case "reset-password":
		if len(args) != 2 {
			return errUsage
		}
		path, err := dbPath()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return runners.resetPassword(path, args[1])
	case "create-user":
		if len(args) < 3 {
			return errUsage
		}
		path, err := dbPath()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		return runners.createUser(path, args[1], strings.Join(args[2:], " "))
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
