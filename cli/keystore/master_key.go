package keystore

import (
	"crypto/sha256"
	"errors"
	"os"
)

// PassphraseEnvVar holds the keystore passphrase for EnvMasterKey.
const PassphraseEnvVar = "RUNWARE_KEYSTORE_PASSPHRASE"

// ErrNoMasterKey is returned when a source has no key material.
var ErrNoMasterKey = errors.New("keystore: no master key available")

// MasterKeySource supplies the secret the file encryption key is derived from.
type MasterKeySource interface {
	GetMasterKey() ([]byte, error)
}

// EnvMasterKey reads the passphrase from an environment variable.
type EnvMasterKey struct {
	// Var defaults to PassphraseEnvVar.
	Var string
}

// GetMasterKey returns the passphrase or ErrNoMasterKey if the variable is
// unset or empty.
func (s EnvMasterKey) GetMasterKey() ([]byte, error) {
	name := s.Var
	if name == "" {
		name = PassphraseEnvVar
	}
	v := os.Getenv(name)
	if v == "" {
		return nil, ErrNoMasterKey
	}
	return []byte(v), nil
}

// MachineMasterKey derives a key from the hostname and user name. It keeps
// keys out of plain text but anyone on the same account can rebuild it; set
// RUNWARE_KEYSTORE_PASSPHRASE for real protection.
type MachineMasterKey struct{}

// GetMasterKey never fails.
func (MachineMasterKey) GetMasterKey() ([]byte, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}
	username := os.Getenv("USER")
	if username == "" {
		username = os.Getenv("USERNAME")
	}

	sum := sha256.Sum256([]byte(hostname + ":" + username + ":runware-keystore"))
	return sum[:], nil
}

// ChainMasterKey tries each source in order and returns the first key found.
type ChainMasterKey []MasterKeySource

// GetMasterKey returns ErrNoMasterKey if every source reports ErrNoMasterKey.
// Any other error stops the chain.
func (c ChainMasterKey) GetMasterKey() ([]byte, error) {
	for _, src := range c {
		key, err := src.GetMasterKey()
		if errors.Is(err, ErrNoMasterKey) {
			continue
		}
		return key, err
	}
	return nil, ErrNoMasterKey
}

// DefaultMasterKeySource prefers the passphrase environment variable and falls
// back to the machine key.
func DefaultMasterKeySource() MasterKeySource {
	return ChainMasterKey{EnvMasterKey{}, MachineMasterKey{}}
}
