package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/edouard/tgbind/telegram"
	"github.com/edouard/tgbind/telegram/objects"
)

func (a *app) updatesCmd() *cobra.Command {
	var (
		follow  bool
		timeout int
		offset  int64
		allowed []string
		chats   []int64
	)
	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Fetch pending updates with long polling",
		Long: `Fetch pending updates with getUpdates and print one line per update.

Without --follow a single round is made and the offset to pass next time is
printed on stderr. Polling fails while a webhook is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.client()
			if err != nil {
				return err
			}
			p := telegram.NewPoller(c)
			p.Timeout = timeout
			if !follow && !cmd.Flags().Changed("timeout") {
				p.Timeout = 0
			}
			p.AllowedUpdates = allowed
			p.SetOffset(offset)
			if len(chats) > 0 {
				p.AllowedChats = make(map[int64]bool, len(chats))
				for _, id := range chats {
					p.AllowedChats[id] = true
				}
			}

			if !follow {
				updates, err := p.Poll(cmd.Context())
				if err != nil {
					return err
				}
				for _, u := range updates {
					fmt.Fprintln(a.stdout, summarize(u))
				}
				fmt.Fprintf(a.stderr, "next offset %d\n", p.Offset())
				return nil
			}

			out := make(chan *objects.Update)
			done := make(chan error, 1)
			go func() { done <- p.Run(cmd.Context(), out) }()
			for {
				select {
				case u := <-out:
					fmt.Fprintln(a.stdout, summarize(u))
				case err := <-done:
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				}
			}
		},
	}
	flags := cmd.Flags()
	flags.BoolVarP(&follow, "follow", "f", false, "keep polling until interrupted")
	flags.IntVar(&timeout, "timeout", telegram.DefaultPollTimeout, "long polling timeout in seconds (a single round returns at once unless set)")
	flags.Int64Var(&offset, "offset", 0, "first update id to fetch")
	flags.StringSliceVar(&allowed, "allowed-updates", nil, "update types to receive")
	flags.Int64SliceVar(&chats, "chat", nil, "only print updates from these chats")
	return cmd
}
