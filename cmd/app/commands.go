package app

import (
	"context"
	"errors"
	"flag"
)

var errUsage = errors.New("usage error")

type command struct {
	summary string
	run     func(ctx context.Context, e *env, args []string) error
}

var commands = map[string]command{
	"login":          {summary: "authenticate and store the bearer token", run: runLogin},
	"logout":         {summary: "clear the stored token", run: runLogout},
	"signup":         {summary: "create an account", run: runSignup},
	"whoami":         {summary: "show the authenticated profile", run: runWhoami},
	"profile":        {summary: "update the authenticated profile", run: runProfile},
	"events":         {summary: "list events", run: runEvents},
	"event":          {summary: "show one event", run: runEvent},
	"event-create":   {summary: "create an event", run: runEventCreate},
	"event-cancel":   {summary: "cancel an event", run: runEventCancel},
	"stats":          {summary: "show event statistics", run: runStats},
	"participations": {summary: "list talent participations", run: runParticipations},
	"register":       {summary: "register a talent for an event", run: runRegister},
	"evaluate":       {summary: "edit a participation's evaluation", run: runEvaluate},
	"slot-create":    {summary: "create an interview time slot", run: runSlotCreate},
	"remind":         {summary: "send interview reminders", run: runRemind},
}

// newFlagSet builds a flag set whose parse errors map to the usage exit
// code instead of os.Exit.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}

	return nil
}
