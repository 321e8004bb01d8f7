package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/edouard/tgbind/internal/platform"
	"github.com/edouard/tgbind/telegram"
)

// broadcastBackoff is a package-level variable for testability.
var broadcastBackoff = platform.Backoff{
	MaxAttempts: 4,
	BaseDelay:   time.Second,
	MaxDelay:    30 * time.Second,
	Retryable:   retryableSend,
}

func retryableSend(err error) bool {
	var te *telegram.TransportError
	return telegram.IsTooManyRequests(err) || errors.As(err, &te)
}

type broadcastTally struct {
	sent        int
	unreachable []string
	failed      []string
}

func (a *app) broadcastCmd() *cobra.Command {
	var (
		chatsFile string
		text      string
		parseMode string
	)
	cmd := &cobra.Command{
		Use:   "broadcast [chat]...",
		Short: "Send one message to many chats within the flood limits",
		Long: `Send the same text to every chat given as an argument or listed one per
line in --chats (blank lines and lines starting with # are skipped).

Sends are paced by the profile's broadcast_rate. Flood-control replies are
retried after the wait Telegram asks for. Chats that blocked or removed the
bot are reported but do not stop the run. The exit status is 2 when any
chat failed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" {
				return errors.New("--text is required")
			}
			chats := args
			if chatsFile != "" {
				listed, err := readChatList(chatsFile)
				if err != nil {
					return err
				}
				chats = append(chats, listed...)
			}
			if len(chats) == 0 {
				return errors.New("no chats given")
			}

			_, profile, err := a.profile()
			if err != nil {
				return err
			}
			c, err := a.client()
			if err != nil {
				return err
			}

			limiter := rate.NewLimiter(rate.Limit(profile.BroadcastRate), 1)
			var tally broadcastTally
			for _, chat := range chats {
				if err := limiter.Wait(cmd.Context()); err != nil {
					return err
				}
				a.deliver(cmd, c, chat, text, parseMode, &tally)
			}
			return a.reportTally(&tally)
		},
	}
	cmd.Flags().StringVar(&chatsFile, "chats", "", "file with one chat id or @username per line")
	cmd.Flags().StringVarP(&text, "text", "t", "", "message text")
	cmd.Flags().StringVar(&parseMode, "parse-mode", "", "Markdown or HTML")
	return cmd
}

func (a *app) deliver(cmd *cobra.Command, c *telegram.Client, chat, text, parseMode string, tally *broadcastTally) {
	ctx := cmd.Context()
	message := func(target string) telegram.Params {
		p := telegram.Params{"chat_id": target, "text": text}
		if parseMode != "" {
			p["parse_mode"] = parseMode
		}
		return p
	}
	target := chat
	err := broadcastBackoff.Do(ctx, func(int) error {
		_, err := c.SendMessage(ctx, message(target))
		if to := telegram.MigrateToChatID(err); to != 0 {
			slog.Warn("group migrated to supergroup", "component", "broadcast", "from", target, "to", to)
			target = strconv.FormatInt(to, 10)
			_, err = c.SendMessage(ctx, message(target))
		}
		return err
	})
	switch {
	case err == nil:
		tally.sent++
	case telegram.IsBotBlockedOrKicked(err), telegram.IsChatNotFound(err):
		tally.unreachable = append(tally.unreachable, chat)
		slog.Debug("chat unreachable", "component", "broadcast", "chat", chat, "error", err)
	default:
		tally.failed = append(tally.failed, chat)
		color.New(color.FgRed).Fprintf(a.stderr, "%s: %v\n", chat, err)
	}
}

func (a *app) reportTally(t *broadcastTally) error {
	color.New(color.FgGreen).Fprintf(a.stdout, "sent %d", t.sent)
	if n := len(t.unreachable); n > 0 {
		color.New(color.FgYellow).Fprintf(a.stdout, ", unreachable %d (%s)", n, strings.Join(t.unreachable, " "))
	}
	if n := len(t.failed); n > 0 {
		color.New(color.FgRed).Fprintf(a.stdout, ", failed %d", n)
	}
	fmt.Fprintln(a.stdout)
	if len(t.failed) > 0 {
		return &exitError{code: 2, err: fmt.Errorf("%d of %d chats failed", len(t.failed), t.sent+len(t.unreachable)+len(t.failed))}
	}
	return nil
}

func readChatList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var chats []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		chats = append(chats, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return chats, nil
}
