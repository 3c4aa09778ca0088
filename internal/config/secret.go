package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/zalando/go-keyring"

	apierrors "github.com/ragu/kaiwa/internal/errors"
)

// The API key never lives in the config file or in request URLs. It is
// resolved at runtime from the environment or the OS keychain.
const (
	// EnvAPIKey is checked first so CI and one-off runs can override the
	// stored credential.
	EnvAPIKey = "GEMINI_API_KEY"

	keyringService = "kaiwa"
	keyringUser    = "gemini-api-key"
)

// ResolveAPIKey returns the API key from $GEMINI_API_KEY, else from the OS
// keychain. Returns ErrNoAPIKey when neither is set.
func ResolveAPIKey() (string, error) {
	if key := strings.TrimSpace(os.Getenv(EnvAPIKey)); key != "" {
		return key, nil
	}

	key, err := keyring.Get(keyringService, keyringUser)
	if err == nil && strings.TrimSpace(key) != "" {
		return strings.TrimSpace(key), nil
	}

	return "", fmt.Errorf("%w: set %s or run 'kaiwa config set-key'", apierrors.ErrNoAPIKey, EnvAPIKey)
}

// StoreAPIKey saves the API key in the OS keychain.
func StoreAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("API key cannot be empty")
	}
	if err := keyring.Set(keyringService, keyringUser, key); err != nil {
		return fmt.Errorf("failed to store API key in keychain: %w", err)
	}
	return nil
}

// DeleteAPIKey removes the API key from the OS keychain.
func DeleteAPIKey() error {
	if err := keyring.Delete(keyringService, keyringUser); err != nil {
		return fmt.Errorf("failed to remove API key from keychain: %w", err)
	}
	return nil
}
