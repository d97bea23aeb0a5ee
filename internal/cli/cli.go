package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"go.uber.org/zap"

	"farmacia/internal/api"
	"farmacia/internal/auth"
	"farmacia/internal/report"
	"farmacia/internal/sales/service"
)

const (
	ErrUnknownCommand Error = "unknown command"
	ErrMissingFlag    Error = "missing required flag"
)

type Error string

func (e Error) Error() string { return string(e) }

// displayError shows msg to the user while keeping err matchable
type displayError struct {
	msg string
	err error
}

func (e *displayError) Error() string { return e.msg }
func (e *displayError) Unwrap() error { return e.err }

type command struct {
	summary string

	// public commands run without a cached credential
	public bool
	run    func(ctx context.Context, args []string) error
}

// App is the pharmacy console. Each invocation runs one command; state
// that must outlive it (credential, sale draft) lives in the local database.
type App struct {
	auth      *auth.Manager
	client    *api.Client
	dashboard *report.Loader
	logger    *zap.Logger
	out       io.Writer
	sales     *service.Service

	commands map[string]command
}

func NewApp(logger *zap.Logger, out io.Writer, m *auth.Manager, c *api.Client, s *service.Service, d *report.Loader) (*App, error) {
	a := App{
		auth:      m,
		client:    c,
		dashboard: d,
		logger:    logger,
		out:       out,
		sales:     s,
	}

	if err := a.validate(); err != nil {
		return nil, err
	}

	a.commands = map[string]command{
		"login":        {summary: "log in with -u user -p password", public: true, run: a.login},
		"logout":       {summary: "drop the cached credential", public: true, run: a.logout},
		"dashboard":    {summary: "sales, alerts and recent stock movements", run: a.showDashboard},
		"categorias":   {summary: "list|create|update|delete categories", run: a.categories},
		"medicamentos": {summary: "list|create|update|delete|status medications", run: a.medications},
		"clientes":     {summary: "list|create|update|delete customers", run: a.customers},
		"vendas":       {summary: "list|show|clientes|produtos|cliente|add|remove|draft|submit|discard", run: a.saleCommands},
		"estoque":      {summary: "list|recentes|mover stock", run: a.stock},
		"alertas":      {summary: "low stock and near expiry alerts", run: a.alerts},
	}

	return &a, nil
}

func (a *App) validate() error {
	var missingDeps []string

	for _, tc := range []struct {
		dep string
		chk func() bool
	}{
		{dep: "logger", chk: func() bool { return a.logger != nil }},
		{dep: "out", chk: func() bool { return a.out != nil }},
		{dep: "auth", chk: func() bool { return a.auth != nil }},
		{dep: "client", chk: func() bool { return a.client != nil }},
		{dep: "sales", chk: func() bool { return a.sales != nil }},
		{dep: "dashboard", chk: func() bool { return a.dashboard != nil }},
	} {
		if !tc.chk() {
			missingDeps = append(missingDeps, tc.dep)
		}
	}

	if len(missingDeps) > 0 {
		return fmt.Errorf(
			"unable to initialize app due to (%d) missing dependencies: %s",
			len(missingDeps),
			strings.Join(missingDeps, ","),
		)
	}

	return nil
}

// Run executes the command named by args[0]. An authorization failure from
// the API drops the cached credential before it is returned.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" {
		a.usage()
		return nil
	}

	cmd, ok := a.commands[args[0]]
	if !ok {
		a.usage()
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}

	if !cmd.public {
		if err := a.auth.Require(); err != nil {
			return fmt.Errorf("%w, run: farmacia login -u <user> -p <password>", err)
		}
	}

	err := cmd.run(ctx, args[1:])
	if a.auth.HandleError(err) {
		a.logger.Warn("credential rejected, dropped it", zap.String("command", args[0]))
	}

	return err
}

func (a *App) usage() {
	names := make([]string, 0, len(a.commands))
	for name := range a.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(a.out, "usage: farmacia <command> [subcommand] [flags]")
	fmt.Fprintln(a.out)
	for _, name := range names {
		fmt.Fprintf(a.out, "  %-13s %s\n", name, a.commands[name].summary)
	}
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login")
	user := fs.String("u", "", "username")
	pass := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *user == "" || *pass == "" {
		return fmt.Errorf("%w: -u and -p", ErrMissingFlag)
	}

	if err := a.auth.Login(ctx, *user, *pass); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "logged in as", *user)

	return nil
}

func (a *App) logout(_ context.Context, _ []string) error {
	if err := a.auth.Logout(); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "logged out")

	return nil
}

// subcommand splits "list -x 1" into "list" and its flags, defaulting to
// list
func subcommand(args []string) (string, []string) {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return "list", args
	}

	return args[0], args[1:]
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	return fs
}

func unknownSubcommand(cmd, sub string) error {
	return fmt.Errorf("%w: %s %s", ErrUnknownCommand, cmd, sub)
}

// IsUnauthorized reports whether err asks the user to log in again
func IsUnauthorized(err error) bool {
	return errors.Is(err, api.ErrUnauthorized) || errors.Is(err, auth.ErrNotLoggedIn)
}
