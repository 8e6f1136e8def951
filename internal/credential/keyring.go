package credential

import (
	"errors"
	"fmt"

	"github.com/99designs/keyring"
)

const (
	serviceName    = "geodev"
	defaultFileDir = "~/.config/geodev/credentials"
)

// ErrNotFound is returned when the keyring holds no value for a key.
var ErrNotFound = errors.New("credential not found")

// Options selects where the file backend keeps its data and how it is
// unlocked.
type Options struct {
	// FileDir defaults to ~/.config/geodev/credentials.
	FileDir string

	// FilePassword unlocks the file backend. When empty the password is
	// prompted for on the terminal.
	FilePassword string
}

// Keyring stores secrets such as database connection strings.
type Keyring struct {
	ring keyring.Keyring
}

// Open returns the system keyring, falling back to an encrypted file when no
// desktop keyring is available.
func Open(opts Options) (*Keyring, error) {
	ring, err := keyring.Open(newConfig(opts))
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return &Keyring{ring: ring}, nil
}

func newConfig(opts Options) keyring.Config {
	if opts.FileDir == "" {
		opts.FileDir = defaultFileDir
	}

	passwordFunc := keyring.TerminalPrompt
	if opts.FilePassword != "" {
		passwordFunc = keyring.FixedStringPrompt(opts.FilePassword)
	}

	return keyring.Config{
		ServiceName: serviceName,
		AllowedBackends: []keyring.BackendType{
			keyring.SecretServiceBackend,
			keyring.KeychainBackend,
			keyring.WinCredBackend,
			keyring.FileBackend,
		},
		FileDir:                  opts.FileDir,
		FilePasswordFunc:         passwordFunc,
		KeychainTrustApplication: true,
	}
}

// New wraps an already opened keyring.
func New(ring keyring.Keyring) *Keyring {
	return &Keyring{ring: ring}
}

// Get retrieves a credential value by key.
func (k *Keyring) Get(key string) (string, error) {
	item, err := k.ring.Get(key)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", fmt.Errorf("getting credential %q: %w", key, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}
	return string(item.Data), nil
}

// Set stores a credential value by key.
func (k *Keyring) Set(key string, value string) error {
	err := k.ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "geodev " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}
	return nil
}

// Delete removes a credential by key.
func (k *Keyring) Delete(key string) error {
	if err := k.ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}
	return nil
}
