package secrets

import (
	"errors"
	"strings"

	"github.com/zalando/go-keyring"
)

// KeyringService groups this app's secrets in the OS keychain.
const KeyringService = "pricewatch"

// GetAPIKey reads the pricing-API key for the configured account. An
// empty account means the endpoint is public; callers treat that as "no
// key" rather than an error.
func GetAPIKey(keyringAccount string) (string, error) {
	if strings.TrimSpace(keyringAccount) == "" {
		return "", nil
	}
	key, err := keyring.Get(KeyringService, keyringAccount)
	if err != nil {
		return "", errors.New("pricing API key not found in keychain")
	}
	return strings.TrimSpace(key), nil
}

func SetAPIKey(keyringAccount string, key string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	if strings.TrimSpace(key) == "" {
		return errors.New("api key is empty")
	}
	return keyring.Set(KeyringService, keyringAccount, key)
}

func DeleteAPIKey(keyringAccount string) error {
	if strings.TrimSpace(keyringAccount) == "" {
		return errors.New("keyring account name is empty")
	}
	return keyring.Delete(KeyringService, keyringAccount)
}
