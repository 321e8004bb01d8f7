package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/edouard/tgbind/telegram"
	"github.com/edouard/tgbind/telegram/inputfile"
	"github.com/edouard/tgbind/telegram/objects"
)

func (a *app) webhookCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "webhook",
		Short: "Manage the bot's webhook and inspect update payloads",
	}
	cmd.AddCommand(a.webhookSetCmd(), a.webhookDeleteCmd(), a.webhookInfoCmd(), a.webhookDecodeCmd())
	return cmd
}

func (a *app) webhookSetCmd() *cobra.Command {
	var (
		cert           string
		maxConnections int
		allowed        []string
	)
	cmd := &cobra.Command{
		Use:   "set <https-url>",
		Short: "Point Telegram at a webhook URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			p := telegram.Params{"url": args[0]}
			if cert != "" {
				p["certificate"] = inputfile.Path(cert)
			}
			if maxConnections > 0 {
				p["max_connections"] = maxConnections
			}
			if len(allowed) > 0 {
				p["allowed_updates"] = allowed
			}
			if _, err := c.SetWebhook(cmd.Context(), p); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "webhook set to %s\n", args[0])
			return nil
		},
	}
	cmd.Flags().StringVar(&cert, "cert", "", "public key certificate to upload (PEM)")
	cmd.Flags().IntVar(&maxConnections, "max-connections", 0, "maximum simultaneous connections (1-100)")
	cmd.Flags().StringSliceVar(&allowed, "allowed-updates", nil, "update types to receive, comma separated")
	return cmd
}

func (a *app) webhookDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Remove the webhook so getUpdates works again",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			if _, err := c.DeleteWebhook(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, "webhook deleted")
			return nil
		},
	}
}

func (a *app) webhookInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the current webhook status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			info, err := c.GetWebhookInfo(cmd.Context())
			if err != nil {
				return err
			}
			label := color.New(color.Bold)
			url := info.URL()
			if url == "" {
				url = "(none, polling mode)"
			}
			label.Fprint(a.stdout, "url:      ")
			fmt.Fprintln(a.stdout, url)
			label.Fprint(a.stdout, "pending:  ")
			fmt.Fprintln(a.stdout, info.PendingUpdateCount())
			if msg := info.LastErrorMessage(); msg != "" {
				label.Fprint(a.stdout, "error:    ")
				color.New(color.FgRed).Fprintln(a.stdout, msg)
			}
			return nil
		},
	}
}

func (a *app) webhookDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode an update payload (stdin by default) and summarize it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = a.in
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			u, err := telegram.ParseUpdate(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(a.stdout, summarize(u))
			return nil
		},
	}
}

// summarize renders an update as one line: id, type, chat, sender and text.
func summarize(u *objects.Update) string {
	kind := u.DetectType()
	if kind == "" {
		kind = "unknown"
	}
	fields := []string{fmt.Sprintf("update %d", u.UpdateID()), "type " + kind}
	if chat := u.Chat(); chat != nil {
		fields = append(fields, fmt.Sprintf("chat %d", chat.ID()))
	}
	if from := u.From(); from != nil {
		fields = append(fields, fmt.Sprintf("from %d", from.ID()))
		if name := from.Username(); name != "" {
			fields = append(fields, "@"+name)
		}
	}
	if m := u.RelatedMessage(); m != nil && m.Text() != "" {
		fields = append(fields, fmt.Sprintf("text %q", m.Text()))
	}
	return strings.Join(fields, " ")
}
