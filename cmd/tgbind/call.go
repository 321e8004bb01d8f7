package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/edouard/tgbind/telegram"
)

func (a *app) callCmd() *cobra.Command {
	var (
		async   bool
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "call <method> [name=value | name:=json | name=@file]...",
		Short: "Call any Bot API method and print its result as JSON",
		Example: `  tgbind call getMe
  tgbind call sendMessage chat_id=42 text="hello"
  tgbind call sendPhoto chat_id=42 photo=@cat.jpg
  tgbind call setMyCommands commands:='[{"command":"start","description":"Start"}]'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, err := a.parseParams(args[1:])
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}
			defer c.Close()

			opts := []telegram.CallOption{telegram.CallAsync(async)}
			if timeout > 0 {
				opts = append(opts, telegram.CallTimeout(timeout))
			}
			d, err := c.CallDeferred(cmd.Context(), args[0], params, opts...)
			if err != nil {
				return err
			}
			if async {
				fmt.Fprintf(a.stderr, "%s sent, waiting for the reply\n", args[0])
			}
			result, err := d.Get()
			if err != nil {
				return err
			}
			return a.printJSON(result)
		},
	}
	cmd.Flags().BoolVar(&async, "async", false, "send without blocking and wait for the reply afterwards")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "request timeout (default from profile)")
	return cmd
}

func (a *app) printJSON(v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
