package telegram

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultTokenEnv is the environment variable read when New gets no token.
const DefaultTokenEnv = "TELEGRAM_BOT_TOKEN"

// lookupEnv is a package-level variable for testability.
var lookupEnv = os.LookupEnv

// dotenvRead is a package-level variable for testability.
var dotenvRead = godotenv.Read

// TokenSource supplies a bot token when none was given explicitly.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) { return f(ctx) }

// resolveToken walks the fallback chain: environment, dotenv files, then
// the token source. An empty result with a nil error means nothing matched.
func resolveToken(ctx context.Context, o *options) (string, error) {
	if v, ok := lookupEnv(o.tokenEnv); ok && v != "" {
		return v, nil
	}
	if len(o.dotEnvFiles) > 0 {
		vars, err := dotenvRead(o.dotEnvFiles...)
		if err != nil {
			return "", fmt.Errorf("telegram: read env files: %w", err)
		}
		if v := vars[o.tokenEnv]; v != "" {
			return v, nil
		}
	}
	if o.tokenSource != nil {
		v, err := o.tokenSource.Token(ctx)
		if err != nil {
			return "", fmt.Errorf("telegram: token source: %w", err)
		}
		return v, nil
	}
	return "", nil
}
