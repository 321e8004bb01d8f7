package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edouard/tgbind/internal/config"
	"github.com/edouard/tgbind/internal/vault"
	"github.com/edouard/tgbind/telegram"
)

// checkToken is a package-level variable for testability. It calls getMe
// with token and returns the bot's username.
var checkToken = func(ctx context.Context, p config.Profile, token string) (string, error) {
	var opts []telegram.Option
	if p.BaseURL != "" {
		opts = append(opts, telegram.WithBaseURL(p.BaseURL))
	}
	c, err := telegram.New(token, opts...)
	if err != nil {
		return "", err
	}
	me, err := c.GetMe(ctx)
	if err != nil {
		return "", err
	}
	return me.Username(), nil
}

func (a *app) vaultCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vault",
		Short: "Manage bot tokens in the encrypted vault",
		Long: `Bot tokens are sealed with a key derived from your passphrase. Every
vault command reads the passphrase as the first line of stdin.`,
	}
	cmd.AddCommand(a.vaultSetCmd(), a.vaultGetCmd(), a.vaultDeleteCmd(), a.vaultListCmd())
	return cmd
}

func (a *app) vaultSetCmd() *cobra.Command {
	var noCheck bool
	cmd := &cobra.Command{
		Use:   "set <bot>",
		Short: "Store a bot token (read from stdin after the passphrase)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			store, err := a.unlock(true)
			if err != nil {
				return vaultUserError(err)
			}
			token, err := a.readLine("Token: ", "token")
			if err != nil {
				return err
			}
			if token == "" {
				return errors.New("empty token")
			}

			cfg, err := a.config()
			if err != nil {
				return err
			}
			username := ""
			if !noCheck {
				if username, err = checkToken(cmd.Context(), cfg.Bots[name], token); err != nil {
					return fmt.Errorf("token rejected: %w", err)
				}
			}
			if err := store.Put(name, token, username); err != nil {
				return err
			}
			if err := a.registerBot(name); err != nil {
				return err
			}
			slog.Info("bot token stored", "component", "vault-cli", "operation", "set", "bot", name)
			fmt.Fprintf(a.stderr, "Token stored for %s", name)
			if username != "" {
				fmt.Fprintf(a.stderr, " (@%s)", username)
			}
			fmt.Fprintln(a.stderr)
			return nil
		},
	}
	cmd.Flags().BoolVar(&noCheck, "no-check", false, "store without calling getMe first")
	return cmd
}

// registerBot adds a profile for name to the config file if it has none.
func (a *app) registerBot(name string) error {
	cfg, err := a.config()
	if err != nil {
		return err
	}
	if _, ok := cfg.Bots[name]; ok {
		return nil
	}
	cfg.SetBot(name, config.Profile{})
	return config.Save(cfg, a.configPath)
}

func (a *app) vaultGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <bot>",
		Short: "Print a stored bot token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.unlock(false)
			if err != nil {
				return vaultUserError(err)
			}
			token, err := store.Token(args[0])
			if err != nil {
				return vaultUserError(err)
			}
			fmt.Fprintln(a.stdout, token)
			return nil
		},
	}
}

func (a *app) vaultDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <bot>",
		Short: "Remove a stored bot token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.unlock(false)
			if err != nil {
				return vaultUserError(err)
			}
			if err := store.Remove(args[0]); err != nil {
				return vaultUserError(err)
			}
			fmt.Fprintf(a.stderr, "Token deleted for %s\n", args[0])
			return nil
		},
	}
}

func (a *app) vaultListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored bots (tokens stay sealed)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := a.unlock(false)
			if err != nil {
				return vaultUserError(err)
			}
			cfg, err := a.config()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			bold := color.New(color.Bold)
			bold.Fprintln(tw, "BOT\tUSERNAME\tADDED")
			for _, b := range store.Bots() {
				name := b.Name
				if name == cfg.DefaultBot {
					name += " *"
				}
				user := "-"
				if b.Username != "" {
					user = "@" + b.Username
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", name, user, b.AddedAt.Format("2006-01-02"))
			}
			return tw.Flush()
		},
	}
}

// vaultUserError rewrites vault errors into something a person can act on.
func vaultUserError(err error) error {
	switch {
	case errors.Is(err, vault.ErrWrongPassphrase):
		return errors.New("wrong passphrase")
	case errors.Is(err, vault.ErrNoVault):
		return fmt.Errorf("%w (store a token with 'tgbind vault set <bot>' first)", err)
	case errors.Is(err, vault.ErrBotNotFound):
		return fmt.Errorf("%w (see 'tgbind vault list')", err)
	}
	return err
}
