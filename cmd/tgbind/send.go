package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edouard/tgbind/telegram"
	"github.com/edouard/tgbind/telegram/objects"
)

// sendOptions are the parameters shared by every send subcommand.
type sendOptions struct {
	ChatID              string `json:"chat_id"`
	ParseMode           string `json:"parse_mode,omitempty"`
	DisableNotification bool   `json:"disable_notification,omitempty"`
}

func (a *app) sendCmd() *cobra.Command {
	var (
		parseMode string
		silent    bool
		caption   string
	)
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a message or a file to a chat",
	}
	cmd.PersistentFlags().StringVar(&parseMode, "parse-mode", "", "Markdown or HTML")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "deliver without a notification sound")

	common := func(chat string) (telegram.Params, error) {
		return telegram.ParamsFrom(sendOptions{ChatID: chat, ParseMode: parseMode, DisableNotification: silent})
	}

	text := &cobra.Command{
		Use:   "text <chat> <text>",
		Short: "Send a text message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			p, err := common(args[0])
			if err != nil {
				return err
			}
			p["text"] = args[1]
			m, err := c.SendMessage(cmd.Context(), p)
			if err != nil {
				return err
			}
			a.reportSent(m)
			return nil
		},
	}

	document := &cobra.Command{
		Use:   "document <chat> <path | s3://bucket/key | url | file_id>",
		Short: "Send a file as a document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := a.fileArg(args[1])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			p, err := common(args[0])
			if err != nil {
				return err
			}
			p["document"] = file
			if caption != "" {
				p["caption"] = caption
			}
			m, err := c.SendDocument(cmd.Context(), p)
			if err != nil {
				return err
			}
			a.reportSent(m)
			if doc := m.Document(); doc != nil {
				fmt.Fprintf(a.stdout, "file_id %s\n", doc.FileID())
			}
			return nil
		},
	}
	document.Flags().StringVar(&caption, "caption", "", "document caption")

	cmd.AddCommand(text, document)
	return cmd
}

func (a *app) reportSent(m *objects.Message) {
	fmt.Fprintf(a.stdout, "sent message %d to chat %d\n", m.MessageID(), m.Chat().ID())
}
