package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// exitError carries a specific exit status out of a command.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	a := newApp(stdin, stdout, stderr)
	root := a.rootCmd()
	root.SetArgs(args[1:])
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()
	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	color.New(color.FgRed).Fprint(stderr, "Error: ")
	fmt.Fprintln(stderr, err)
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return 1
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tgbind",
		Short: "Talk to the Telegram Bot API from the command line",
		Long: `tgbind calls Telegram Bot API methods with tokens kept in an encrypted vault.

Tokens are looked up in this order: $TELEGRAM_BOT_TOKEN, the profile's
env_file, then the vault entry named after the bot profile.`,
		Example: `  # Store a token and check it works
  tgbind vault set alerts
  tgbind call getMe

  # Send a file from S3
  tgbind send document -- -100123456 s3://reports/daily.pdf`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.setupLogging()
		},
	}
	root.SetVersionTemplate("{{.Version}}\n")

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tgbind/config.json)")
	flags.StringVarP(&a.botName, "bot", "b", "", "bot profile to use (default from config)")
	flags.StringVar(&a.envFile, "env-file", "", "dotenv file holding TELEGRAM_BOT_TOKEN (overrides the profile)")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "log requests to stderr")

	root.AddCommand(
		a.versionCmd(),
		a.callCmd(),
		a.sendCmd(),
		a.downloadCmd(),
		a.webhookCmd(),
		a.updatesCmd(),
		a.broadcastCmd(),
		a.vaultCmd(),
	)
	return root
}

func (a *app) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(a.stdout, Version)
		},
	}
}

func (a *app) setupLogging() {
	level := slog.LevelWarn
	if a.verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})))
}
