// Package credential stores secrets, such as the redis password, in the
// system keyring.
package credential

import (
	"errors"
	"fmt"
	"os"

	"github.com/99designs/keyring"
)

const serviceName = "eventcal"

// RedisPasswordKey is the keyring entry holding the redis password.
const RedisPasswordKey = "redis-password"

// RedisPasswordEnv overrides the keyring entry when set.
const RedisPasswordEnv = "EVENTCAL_REDIS_PASSWORD"

var ringConfig = keyring.Config{
	ServiceName: serviceName,
	AllowedBackends: []keyring.BackendType{
		keyring.KeychainBackend,
		keyring.SecretServiceBackend,
		keyring.WinCredBackend,
		keyring.PassBackend,
		keyring.FileBackend,
	},
	FileDir:                  "~/.config/eventcal/credentials",
	FilePasswordFunc:         keyring.FixedStringPrompt("eventcal-file-key"),
	KeychainTrustApplication: true,
}

// openKeyring returns a configured keyring instance.
func openKeyring() (keyring.Keyring, error) {
	ring, err := keyring.Open(ringConfig)
	if err != nil {
		return nil, fmt.Errorf("opening keyring: %w", err)
	}
	return ring, nil
}

// Get retrieves a credential value by key from the system keyring.
func Get(key string) (string, error) {
	ring, err := openKeyring()
	if err != nil {
		return "", err
	}

	item, err := ring.Get(key)
	if err != nil {
		return "", fmt.Errorf("getting credential %q: %w", key, err)
	}

	return string(item.Data), nil
}

// Set stores a credential value by key in the system keyring.
func Set(key string, value string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	err = ring.Set(keyring.Item{
		Key:   key,
		Data:  []byte(value),
		Label: "eventcal " + key,
	})
	if err != nil {
		return fmt.Errorf("setting credential %q: %w", key, err)
	}

	return nil
}

// Delete removes a credential by key from the system keyring.
func Delete(key string) error {
	ring, err := openKeyring()
	if err != nil {
		return err
	}

	if err := ring.Remove(key); err != nil {
		return fmt.Errorf("deleting credential %q: %w", key, err)
	}

	return nil
}

// RedisPassword returns the redis password from the environment or the
// keyring. No stored password is not an error.
func RedisPassword() (string, error) {
	if pw, ok := os.LookupEnv(RedisPasswordEnv); ok {
		return pw, nil
	}

	pw, err := Get(RedisPasswordKey)
	if errors.Is(err, keyring.ErrKeyNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return pw, nil
}
