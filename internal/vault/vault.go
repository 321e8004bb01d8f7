// Package vault keeps bot tokens encrypted at rest, one per named bot.
package vault

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/edouard/tgbind/internal/platform"
	"github.com/edouard/tgbind/telegram"
)

// Sentinel errors.
var (
	ErrNoVault         = errors.New("vault: not initialized")
	ErrExists          = errors.New("vault: already initialized")
	ErrWrongPassphrase = errors.New("vault: wrong passphrase")
	ErrBotNotFound     = errors.New("vault: bot not found")
	ErrDecrypt         = errors.New("vault: decryption failed")
)

const (
	fileVersion = 1
	filePerm    = 0o600
	// checkPlaintext is sealed at Init and verified by Unlock.
	checkPlaintext = "tgbind-vault"
)

// Replaceable for testing error paths.
var (
	atomicWrite = platform.AtomicWrite
	osReadFile  = os.ReadFile
	now         = time.Now
)

type document struct {
	Version int               `json:"version"`
	Salt    []byte            `json:"salt"`
	Check   []byte            `json:"check"`
	Bots    map[string]record `json:"bots"`
}

type record struct {
	Token    []byte    `json:"token"`
	Username string    `json:"username,omitempty"`
	AddedAt  time.Time `json:"added_at"`
}

// Bot is the public, token-free view of a stored bot.
type Bot struct {
	Name     string
	Username string
	AddedAt  time.Time
}

// Store is an unlocked vault. It is safe for concurrent use.
type Store struct {
	path string
	key  *[keySize]byte

	mu  sync.Mutex
	doc document
}

// Init creates a new vault at path protected by passphrase.
func Init(path, passphrase string) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrExists, path)
	}
	salt, err := newSalt()
	if err != nil {
		return nil, err
	}
	key := deriveKey(passphrase, salt)
	check, err := seal(key, []byte(checkPlaintext))
	if err != nil {
		return nil, err
	}
	s := &Store{
		path: path,
		key:  key,
		doc:  document{Version: fileVersion, Salt: salt, Check: check, Bots: map[string]record{}},
	}
	if err := s.persist(); err != nil {
		return nil, fmt.Errorf("vault: init: %w", err)
	}
	slog.Info("vault initialized", "component", "vault", "operation", "init", "path", path)
	return s, nil
}

// Unlock opens the vault at path. It returns ErrNoVault when the file does
// not exist and ErrWrongPassphrase when passphrase does not match.
func Unlock(path, passphrase string) (*Store, error) {
	data, err := osReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoVault, path)
	}
	if err != nil {
		return nil, fmt.Errorf("vault: unlock: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("vault: unlock: parse %s: %w", path, err)
	}
	if doc.Version != fileVersion {
		return nil, fmt.Errorf("vault: unlock: unsupported version %d", doc.Version)
	}
	if len(doc.Salt) == 0 {
		return nil, fmt.Errorf("vault: unlock: missing salt")
	}
	key := deriveKey(passphrase, doc.Salt)
	if check, err := unseal(key, doc.Check); err != nil || string(check) != checkPlaintext {
		return nil, ErrWrongPassphrase
	}
	if doc.Bots == nil {
		doc.Bots = map[string]record{}
	}
	slog.Debug("vault unlocked", "component", "vault", "operation", "unlock", "path", path, "bots", len(doc.Bots))
	return &Store{path: path, key: key, doc: doc}, nil
}

// Put stores token under name, replacing any previous entry.
func (s *Store) Put(name, token, username string) error {
	if name == "" {
		return errors.New("vault: put: empty bot name")
	}
	box, err := seal(s.key, []byte(token))
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.doc.Bots[name]
	s.doc.Bots[name] = record{Token: box, Username: username, AddedAt: now().UTC()}
	if err := s.persist(); err != nil {
		if existed {
			s.doc.Bots[name] = prev
		} else {
			delete(s.doc.Bots, name)
		}
		return fmt.Errorf("vault: put %s: %w", name, err)
	}
	slog.Info("bot token stored", "component", "vault", "operation", "put", "bot", name)
	return nil
}

// Token decrypts the token stored under name.
func (s *Store) Token(name string) (string, error) {
	s.mu.Lock()
	rec, ok := s.doc.Bots[name]
	s.mu.Unlock()
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrBotNotFound, name)
	}
	plain, err := unseal(s.key, rec.Token)
	if err != nil {
		return "", fmt.Errorf("vault: token %s: %w", name, err)
	}
	return string(plain), nil
}

// Remove deletes the entry for name.
func (s *Store) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.doc.Bots[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrBotNotFound, name)
	}
	delete(s.doc.Bots, name)
	if err := s.persist(); err != nil {
		s.doc.Bots[name] = rec
		return fmt.Errorf("vault: remove %s: %w", name, err)
	}
	slog.Info("bot token removed", "component", "vault", "operation", "remove", "bot", name)
	return nil
}

// Bots lists stored bots sorted by name. Tokens stay sealed.
func (s *Store) Bots() []Bot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Bot, 0, len(s.doc.Bots))
	for name, rec := range s.doc.Bots {
		out = append(out, Bot{Name: name, Username: rec.Username, AddedAt: rec.AddedAt})
	}
	slices.SortFunc(out, func(a, b Bot) int { return strings.Compare(a.Name, b.Name) })
	return out
}

// TokenSource returns a source that yields the token stored under name,
// for use with telegram.WithTokenSource.
func (s *Store) TokenSource(name string) telegram.TokenSource {
	return telegram.TokenSourceFunc(func(context.Context) (string, error) {
		return s.Token(name)
	})
}

func (s *Store) persist() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	return atomicWrite(s.path, data, filePerm)
}
