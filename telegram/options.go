package telegram

import (
	"time"

	"github.com/edouard/tgbind/telegram/transport"
)

type options struct {
	baseURL        string
	transport      transport.Transport
	async          bool
	timeout        time.Duration
	connectTimeout time.Duration
	tokenEnv       string
	dotEnvFiles    []string
	tokenSource    TokenSource
	uploadRoot     string
}

// Option configures a Client.
type Option func(*options)

// WithBaseURL points the client at another API server.
func WithBaseURL(u string) Option {
	return func(o *options) { o.baseURL = u }
}

// WithTransport replaces the default net/http transport.
func WithTransport(t transport.Transport) Option {
	return func(o *options) { o.transport = t }
}

// WithAsync starts the client in asynchronous mode.
func WithAsync(async bool) Option {
	return func(o *options) { o.async = async }
}

// WithTimeout sets the default total request timeout.
func WithTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

// WithConnectTimeout sets the default connection timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(o *options) { o.connectTimeout = d }
}

// WithTokenEnv changes the environment variable the token is read from.
func WithTokenEnv(name string) Option {
	return func(o *options) { o.tokenEnv = name }
}

// WithDotEnv reads the token variable from dotenv files when the process
// environment lacks it.
func WithDotEnv(files ...string) Option {
	return func(o *options) { o.dotEnvFiles = append(o.dotEnvFiles, files...) }
}

// WithTokenSource is the last resort when no token is found elsewhere.
func WithTokenSource(s TokenSource) Option {
	return func(o *options) { o.tokenSource = s }
}

// WithUploadRoot restricts which local files may be uploaded by path.
func WithUploadRoot(dir string) Option {
	return func(o *options) { o.uploadRoot = dir }
}

// callConfig is the per-call view of the client settings.
type callConfig struct {
	token          string
	async          bool
	timeout        time.Duration
	connectTimeout time.Duration
}

// CallOption overrides client settings for a single call.
type CallOption func(*callConfig)

// CallAsync sends this call asynchronously (or synchronously) regardless of
// the client mode.
func CallAsync(async bool) CallOption {
	return func(c *callConfig) { c.async = async }
}

func CallTimeout(d time.Duration) CallOption {
	return func(c *callConfig) { c.timeout = d }
}

func CallConnectTimeout(d time.Duration) CallOption {
	return func(c *callConfig) { c.connectTimeout = d }
}

// CallToken uses another bot token for this call.
func CallToken(token string) CallOption {
	return func(c *callConfig) { c.token = token }
}
