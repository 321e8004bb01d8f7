package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/edouard/tgbind/internal/config"
	"github.com/edouard/tgbind/internal/vault"
	"github.com/edouard/tgbind/telegram"
)

// Replaceable for testing.
var (
	defaultConfigPath = config.DefaultPath
	vaultUnlock       = vault.Unlock
	vaultInit         = vault.Init
)

// app is the state shared by every subcommand of one invocation.
type app struct {
	in     *bufio.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	botName    string
	envFile    string
	verbose    bool

	cfg   *config.Config
	store *vault.Store
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{in: bufio.NewReader(stdin), stdout: stdout, stderr: stderr}
}

func (a *app) config() (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}
	if a.configPath == "" {
		p, err := defaultConfigPath()
		if err != nil {
			return nil, err
		}
		a.configPath = p
	}
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return nil, err
	}
	a.cfg = cfg
	return cfg, nil
}

func (a *app) profile() (string, config.Profile, error) {
	cfg, err := a.config()
	if err != nil {
		return "", config.Profile{}, err
	}
	return cfg.Profile(a.botName)
}

// readLine prompts on stderr and reads one line of stdin. A last line
// without a newline is accepted.
func (a *app) readLine(prompt, what string) (string, error) {
	fmt.Fprint(a.stderr, prompt)
	line, err := a.in.ReadString('\n')
	if err != nil && (!errors.Is(err, io.EOF) || line == "") {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return "", fmt.Errorf("reading %s: %w", what, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// unlock opens the vault, asking for the passphrase once per invocation.
// With create set, a missing vault is initialized with that passphrase.
func (a *app) unlock(create bool) (*vault.Store, error) {
	if a.store != nil {
		return a.store, nil
	}
	cfg, err := a.config()
	if err != nil {
		return nil, err
	}
	pass, err := a.readLine("Passphrase: ", "passphrase")
	if err != nil {
		return nil, err
	}
	store, err := vaultUnlock(cfg.VaultPath, pass)
	if errors.Is(err, vault.ErrNoVault) && create {
		store, err = vaultInit(cfg.VaultPath, pass)
	}
	if err != nil {
		return nil, err
	}
	a.store = store
	return store, nil
}

// client builds a Bot API client for the selected profile. The vault is
// only unlocked when neither the environment nor the env file has a token.
func (a *app) client() (*telegram.Client, error) {
	name, p, err := a.profile()
	if err != nil {
		return nil, err
	}
	opts := []telegram.Option{
		telegram.WithTimeout(p.Timeout.Duration),
		telegram.WithConnectTimeout(p.ConnectTimeout.Duration),
		telegram.WithTokenSource(telegram.TokenSourceFunc(func(ctx context.Context) (string, error) {
			store, err := a.unlock(false)
			if err != nil {
				return "", vaultUserError(err)
			}
			token, err := store.TokenSource(name).Token(ctx)
			return token, vaultUserError(err)
		})),
	}
	if p.BaseURL != "" {
		opts = append(opts, telegram.WithBaseURL(p.BaseURL))
	}
	if a.envFile != "" {
		p.EnvFile = a.envFile
	}
	if p.EnvFile != "" {
		opts = append(opts, telegram.WithDotEnv(p.EnvFile))
	}
	if p.UploadRoot != "" {
		opts = append(opts, telegram.WithUploadRoot(p.UploadRoot))
	}
	c, err := telegram.New("", opts...)
	if err != nil {
		return nil, fmt.Errorf("bot %s: %w", name, err)
	}
	return c, nil
}
