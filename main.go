package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-kit/kit/log"
	"github.com/jawher/mow.cli"

	"webup/monit/actions"
	"webup/monit/config"
	"webup/monit/domain"
	"webup/monit/helpers"
	"webup/monit/templates"
)

func main() {

	// the env file may define the variables read by the options below
	if err := config.LoadEnv(config.DefaultEnvFile); err != nil {
		fmt.Fprintf(os.Stderr, "Unable to load '%s': %s\n", config.DefaultEnvFile, err)
		os.Exit(1)
	}

	app := cli.App("monit-recipe", "Install and manage the Monit configuration of the servers")

	app.Version("V version", "monit-recipe 1.0")

	configFile := app.String(cli.StringOpt{
		Name:   "c config",
		Value:  config.DefaultFilename,
		Desc:   "Path of the project file",
		EnvVar: "MONIT_CONFIG",
	})
	env := app.String(cli.StringOpt{
		Name:   "env",
		Value:  "",
		Desc:   "Change the environment (i.e. 'prod'). Overrides the 'env' of the project file.",
		EnvVar: "MONIT_ENV",
	})
	dryRun := app.Bool(cli.BoolOpt{
		Name:  "n dry-run",
		Value: false,
		Desc:  "Print the commands without executing them",
	})
	verbose := app.Bool(cli.BoolOpt{
		Name:   "v verbose",
		Value:  false,
		Desc:   "Log every command and upload on stderr",
		EnvVar: "MONIT_VERBOSE",
	})

	// loads the project file and builds the session of the commands needing it
	newSession := func() (*domain.Session, func()) {
		ParseAndCheckConfig(*configFile)

		cfg := config.Get()
		if *env != "" {
			cfg.Env = *env
		}
		if *dryRun {
			cfg.SudoPassword = ""
		} else {
			actions.ResolveSudoPassword(&cfg)
		}

		return NewSession(cfg, *dryRun, *verbose)
	}

	app.Command("tasks", "List the available tasks", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			actions.ListTasksActionHandler(os.Stdout)
		}
	})

	app.Command("hosts", "List the servers of the project and their roles", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			ParseAndCheckConfig(*configFile)

			ctx := config.Get().NewExecutionContext()
			actions.ListHostsActionHandler(os.Stdout, ctx)
		}
	})

	app.Command("render", renderDescription(), func(cmd *cli.Cmd) {

		cmd.Spec = "NAME"
		name := cmd.StringArg("NAME", "", "The config to render")

		cmd.Action = func() {
			ParseAndCheckConfig(*configFile)

			cfg := config.Get()
			renderer := templates.New(cfg.Monit.Templates)
			if err := actions.RenderActionHandler(os.Stdout, renderer, cfg.NewExecutionContext(), *name); err != nil {
				fail(err)
			}
		}
	})

	app.Command("run", "Execute tasks. Run 'monit-recipe tasks' to get the list of the tasks", func(cmd *cli.Cmd) {

		cmd.Spec = "[-y] TASK..."
		yes := cmd.BoolOpt("y yes", false, "Do not ask for confirmation in production")
		taskNames := cmd.StringsArg("TASK", nil, "The tasks to execute, in order")

		cmd.Action = func() {
			session, closeSession := newSession()
			defer closeSession()

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			names := []domain.TaskID{}
			for _, name := range *taskNames {
				names = append(names, domain.TaskID(name))
			}

			if err := actions.RunTasksActionHandler(ctx, session, names, *yes); err != nil {
				closeSession()
				fail(err)
			}
		}
	})

	app.Run(os.Args)
}

func ParseAndCheckConfig(filename string) {
	if err := config.Check(filename); err != nil {
		fail(err)
	}
}

// NewSession wires the transports and the renderer. The returned func closes
// the connections.
func NewSession(cfg domain.Config, dryRun bool, verbose bool) (*domain.Session, func()) {
	var transport domain.Transport
	var name string
	closeFunc := func() {}

	if dryRun {
		transport = helpers.DryRunTransport{}
		name = "dry-run"
	} else {
		ssh := helpers.NewSSHTransport(cfg.SSH, cfg.SudoPassword, os.Stdout)
		transport = helpers.HostRouter{
			Local:  helpers.NewLocalTransport(os.Stdout, cfg.SudoPassword),
			Remote: ssh,
		}
		name = "ssh"
		closeFunc = func() { ssh.Close() }
	}

	logger := log.NewNopLogger()
	if verbose {
		logger = log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	}
	transport = helpers.LogMiddleware(logger, name)(transport)

	renderer := templates.New(cfg.Monit.Templates)

	return domain.NewSession(cfg.NewExecutionContext(), transport, renderer, os.Stdout), closeFunc
}

// renderDescription lists the builtin templates in the help of 'render'.
func renderDescription() string {
	desc := "Print a Monit config as it would be installed"
	names, err := templates.New("").Names()
	if err != nil || len(names) == 0 {
		return desc
	}
	return fmt.Sprintf("%s (%s)", desc, strings.Join(names, ", "))
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "\n %s %s\n", color.RedString("✗"), err)
	cli.Exit(1)
}
