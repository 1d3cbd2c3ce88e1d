package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tommilligan/mdbook-admonish/config"
	"github.com/tommilligan/mdbook-admonish/install"
	"github.com/tommilligan/mdbook-admonish/misc"
	"github.com/tommilligan/mdbook-admonish/preprocess"
	"github.com/tommilligan/mdbook-admonish/state"
)

// initializeAppContext prepares application context before command execution but
// after command line has been parsed
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := state.EnvFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		if env.Rpt, err = env.Cfg.Reporting.Prepare(); err != nil {
			return ctx, fmt.Errorf("unable to prepare debug reporter: %w", err)
		}
		// save complete processed configuration if external configuration was provided
		if len(configFile) > 0 {
			if data, err := config.Dump(env.Cfg); err == nil {
				env.Rpt.StoreData(fmt.Sprintf("config/%s", filepath.Base(configFile)), data)
			}
		}
	}
	if env.Log, err = env.Cfg.Logging.Prepare(env.Rpt); err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.RedirectStdLog()

	env.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", misc.GetVersion()), zap.String("runtime", runtime.Version()), zap.String("hash", misc.GetGitHash()))

	if env.Rpt != nil {
		env.Log.Info("Creating debug report", zap.String("location", env.Rpt.Name()))
	}
	if len(configFile) == 0 && env.Log != nil {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Debug("Program ended", zap.Duration("elapsed", env.Uptime()), zap.Strings("parsed args", cmd.Args().Slice()))
	}

	// close logging
	env.RestoreStdLog()

	// log is synced now and result can be used in report if necessary, errors
	// must be reported directly to stderr from now on
	if env.Rpt != nil {
		if er := env.Rpt.Close(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close debug report: %w", er))
		}
	}
	// reporting is closed now - remove empty panic file if any
	if env.Cfg != nil && len(env.Cfg.Logging.FileLogger.Destination) > 0 {
		debug.SetCrashOutput(nil, debug.CrashOptions{})
		fname := filepath.Join(filepath.Dir(env.Cfg.Logging.FileLogger.Destination), misc.GetAppName()+"-panic.log")
		if fi, er := os.Stat(fname); er == nil && fi.Size() == 0 {
			if er := os.Remove(fname); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to remove empty panic log file '%s': %w", fname, er))
			}
		}
	}
	return
}

// Ignore urfave/cli default error handling - for me cli.Exit() looks
// non-transparent and unnesessary. I will return regular errors from
// subcommands.
var errWasHandled bool

// this is called before appContext is destroyed, so we have a chance to
// properly log any error from subcommand
func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {

	env := state.EnvFromContext(ctx)

	if env.Log != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	// do nothing special, error is reported either by exitErrHandler or on
	// exit directly to stderr.
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	state.EnvFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

func main() {

	// allow graceful shutdown on interrupt.
	// NOTE: mdbook may terminate a long running preprocessor, make sure we
	// finish logging and reporting cleanly when that happens
	ctx, stop := signal.NotifyContext(state.ContextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	app := &cli.Command{
		Name:            misc.GetAppName(),
		Usage:           "mdbook preprocessor to add support for admonitions",
		Version:         misc.GetVersion() + " (" + runtime.Version() + ") : " + misc.GetGitHash(),
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "changes program behavior to help troubleshooting, produces report archive"},
		},
		// without a subcommand we run as a preprocessor: mdbook pipes
		// [context, book] to stdin and reads the transformed book from stdout
		Action: preprocess.Run,
		Commands: []*cli.Command{
			{
				Name:         "supports",
				Usage:        "Check whether a renderer is supported by this preprocessor",
				OnUsageError: usageErrorHandler,
				Action:       checkRendererSupport,
				ArgsUsage:    "RENDERER",
				CustomHelpTemplate: fmt.Sprintf(`%s
RENDERER:
    name of the renderer mdbook is about to run (html, markdown, ...)

Exit code signals support. Every renderer is accepted: non-html renderers
leave chapters untouched unless configured otherwise.
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "install",
				Usage:        "Install the required asset files and include them in the book config",
				OnUsageError: usageErrorHandler,
				Action:       runInstall,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "css-dir", Usage: "relative `DIR` for the css assets, from the book directory root (overrides configuration)"},
				},
				ArgsUsage: "BOOK_DIR",
				CustomHelpTemplate: fmt.Sprintf(`%s
BOOK_DIR:
    root directory for the book, should contain the configuration file (book.toml)
    if absent - current working directory
`, cli.CommandHelpTemplate),
			},
			{
				Name:         "generate-custom",
				Usage:        "Generate stylesheet rules for custom directives configured in book.toml",
				OnUsageError: usageErrorHandler,
				Action:       runGenerateCustom,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write generated css to `FILE` instead of STDOUT"},
				},
				ArgsUsage: "BOOK_DIR",
				CustomHelpTemplate: fmt.Sprintf(`%s
BOOK_DIR:
    root directory for the book, should contain the configuration file (book.toml)
    if absent - current working directory
`, cli.CommandHelpTemplate),
			},
			{
				Name:  "dumpconfig",
				Usage: "Dumps either default or actual configuration (YAML)",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "DESTINATION",
				CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values wich is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
			},
		},
	}

	var err error
	// NOTE: os.Exit is called at the end of main to set exit code, make sure
	// there are no other deffered functions after that
	defer func() {
		stop()
		if err != nil {
			// It may happen that log is either not set yet (argument parsing) or already closed,
			// report errors to stderr directly
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = app.Run(ctx, os.Args)
}

// checkRendererSupport signals renderer support via exit code. Every renderer
// is supported: what happens for a given renderer is decided by render mode
// at processing time, not here.
func checkRendererSupport(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)
	env.Log.Debug("Renderer is supported", zap.String("renderer", cmd.Args().Get(0)))
	return nil
}

func runInstall(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many book directories", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}
	bookDir := cmd.Args().Get(0)
	if len(bookDir) == 0 {
		bookDir = "."
	}
	cssDir := cmd.String("css-dir")
	if len(cssDir) == 0 {
		cssDir = env.Cfg.Install.CSSDir
	}
	return install.Install(bookDir, cssDir, env.Log)
}

func runGenerateCustom(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	bookDir := cmd.Args().Get(0)
	if len(bookDir) == 0 {
		bookDir = "."
	}

	cfg, err := install.LoadBookConfig(bookDir)
	if err != nil {
		return err
	}
	css, err := install.CustomCSS(bookDir, cfg, env.Log)
	if err != nil {
		return err
	}

	fname := cmd.String("output")
	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()
		env.Log.Info("Writing generated css", zap.String("file", fname))
	}

	if _, err = out.WriteString(css); err != nil {
		return fmt.Errorf("unable to write generated css: %w", err)
	}
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {

	env := state.EnvFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		err   error
		data  []byte
		state string
	)

	out := os.Stdout
	if len(fname) > 0 {
		out, err = os.Create(fname)
		if err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer out.Close()

	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputing configuration", zap.String("state", state), zap.String("file", fname))

	_, err = out.Write(data)
	if err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}
