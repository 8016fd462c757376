package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"go.uber.org/zap"

	"github.com/20mouhcine/jobgate-client/internal/api"
	"github.com/20mouhcine/jobgate-client/internal/config"
	"github.com/20mouhcine/jobgate-client/internal/guard"
	"github.com/20mouhcine/jobgate-client/internal/logger"
	"github.com/20mouhcine/jobgate-client/internal/session"
	"github.com/20mouhcine/jobgate-client/internal/state"
	"github.com/20mouhcine/jobgate-client/internal/state/dao"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// env bundles everything a command needs; constructed once per run and
// passed down explicitly.
type env struct {
	conf    *config.AppConfig
	client  *api.Client
	store   *state.Store
	session *session.Store
}

// Run wires config, logger, state store, API client and session store,
// then dispatches the subcommand. Returns the process exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()

		return exitUsage
	}
	command, rest := args[0], args[1:]

	cmd, ok := commands[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n", command)
		printUsage()

		return exitUsage
	}

	conf, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize config -> %v\n", err)

		return exitFailure
	}

	if err := logger.Init(conf.API.Environment); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger -> %v\n", err)

		return exitFailure
	}
	defer func() { _ = zap.L().Sync() }()

	db, err := dao.Open(conf.State.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open state store -> %v\n", err)

		return exitFailure
	}

	store := state.NewStore(dao.NewStateDAO(db), conf.State.Path)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The unauthorized hook closes over the session store, which itself
	// needs the client; bind it through a pointer set just below.
	var sess *session.Store
	client := api.NewClient(conf.API.BaseURL, conf.API.Timeout,
		api.WithTokenSource(func() string {
			token, err := store.Token(ctx)
			if err != nil {
				zap.L().Warn("reading token failed", zap.Error(err))

				return ""
			}

			return token
		}),
		api.WithUnauthorizedHook(func() {
			if sess != nil {
				sess.HandleUnauthorized()
			}
		}),
	)
	sess = session.NewStore(client, store)

	if err := guard.New(store).Check(ctx, command); err != nil {
		fmt.Fprintln(os.Stderr, err)

		return exitFailure
	}

	if !guard.IsPublic(command) {
		sess.Bootstrap(ctx)
	}

	e := &env{conf: conf, client: client, store: store, session: sess}
	if err := cmd.run(ctx, e, rest); err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		fmt.Fprintln(os.Stderr, err)

		return exitFailure
	}

	return exitOK
}

func configPath() string {
	if path := os.Getenv("JOBGATE_CONFIG"); path != "" {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".jobgate", "config.yml")
	}

	return filepath.Join(home, ".jobgate", "config.yml")
}

func printUsage() {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(os.Stderr, "usage: jobgate <command> [flags]")
	fmt.Fprintln(os.Stderr, "\ncommands:")
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-14s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(os.Stderr, "\nrun \"jobgate <command> -h\" for the command's flags.")
}
