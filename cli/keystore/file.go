package keystore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"golang.org/x/crypto/argon2"
)

// File format constants
const (
	magicHeader   = "RWKS"
	formatVersion = byte(0x01)
	saltLength    = 16
	nonceLength   = 12
	headerLength  = len(magicHeader) + 1 + saltLength + nonceLength
)

// ErrBadFormat is returned for files that are not runware keystores.
var ErrBadFormat = errors.New("keystore: unrecognized file format")

// kdfParams are the Argon2id cost parameters.
type kdfParams struct {
	time    uint32
	memory  uint32
	threads uint8
}

// OWASP recommended Argon2id settings.
var defaultKDF = kdfParams{time: 3, memory: 64 * 1024, threads: 4}

// FileKeystore implements Keystore using encrypted file storage.
// Keys are stored in a JSON map sealed with AES-256-GCM under a key derived
// by Argon2id from the master key and a per-write salt.
//
// File layout: [magic "RWKS" (4)] [version (1)] [salt (16)] [nonce (12)] [ciphertext].
// The header is authenticated as additional data.
type FileKeystore struct {
	path      string
	masterKey []byte
	kdf       kdfParams
	mu        sync.RWMutex
}

// NewFileKeystore creates a keystore at path. The master key is read from
// source once.
func NewFileKeystore(path string, source MasterKeySource) (*FileKeystore, error) {
	masterKey, err := source.GetMasterKey()
	if err != nil {
		return nil, err
	}

	return &FileKeystore{
		path:      path,
		masterKey: masterKey,
		kdf:       defaultKDF,
	}, nil
}

// Path returns the keystore file location.
func (f *FileKeystore) Path() string {
	return f.path
}

// Set stores a key-value pair.
func (f *FileKeystore) Set(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	data[name] = value
	return f.saveData(data)
}

// Get retrieves a value by name.
func (f *FileKeystore) Get(name string) (string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return "", err
	}

	value, ok := data[name]
	if !ok {
		return "", &ErrKeyNotFound{Name: name}
	}

	return value, nil
}

// Delete removes a key by name.
func (f *FileKeystore) Delete(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := f.loadData()
	if err != nil {
		return err
	}

	if _, ok := data[name]; !ok {
		return &ErrKeyNotFound{Name: name}
	}

	delete(data, name)
	return f.saveData(data)
}

// List returns all stored key names.
func (f *FileKeystore) List() ([]string, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	data, err := f.loadData()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	sort.Strings(names)

	return names, nil
}

// loadData reads and decrypts the keystore file. A missing or empty file is
// an empty store.
func (f *FileKeystore) loadData() (map[string]string, error) {
	data := make(map[string]string)

	sealed, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return data, nil
		}
		return nil, err
	}

	if len(sealed) == 0 {
		return data, nil
	}

	plaintext, err := f.decrypt(sealed)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}

	return data, nil
}

// saveData encrypts and writes the keystore file.
func (f *FileKeystore) saveData(data map[string]string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return err
	}

	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	sealed, err := f.encrypt(plaintext)
	if err != nil {
		return err
	}

	// Write with restrictive permissions (user only)
	return os.WriteFile(f.path, sealed, 0600)
}

func (f *FileKeystore) aead(salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey(f.masterKey, salt, f.kdf.time, f.kdf.memory, f.kdf.threads, 32)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (f *FileKeystore) encrypt(plaintext []byte) ([]byte, error) {
	header := make([]byte, headerLength)
	copy(header, magicHeader)
	header[len(magicHeader)] = formatVersion

	salt := header[len(magicHeader)+1 : len(magicHeader)+1+saltLength]
	nonce := header[len(magicHeader)+1+saltLength:]
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	gcm, err := f.aead(salt)
	if err != nil {
		return nil, err
	}

	return append(header, gcm.Seal(nil, nonce, plaintext, header)...), nil
}

func (f *FileKeystore) decrypt(sealed []byte) ([]byte, error) {
	if len(sealed) < headerLength || string(sealed[:len(magicHeader)]) != magicHeader {
		return nil, ErrBadFormat
	}
	if v := sealed[len(magicHeader)]; v != formatVersion {
		return nil, fmt.Errorf("keystore: unsupported version %d", v)
	}

	header := sealed[:headerLength]
	salt := header[len(magicHeader)+1 : len(magicHeader)+1+saltLength]
	nonce := header[len(magicHeader)+1+saltLength:]

	gcm, err := f.aead(salt)
	if err != nil {
		return nil, err
	}

	plaintext, err := gcm.Open(nil, nonce, sealed[headerLength:], header)
	if err != nil {
		return nil, fmt.Errorf("keystore: cannot decrypt %s (wrong passphrase?): %w", f.path, err)
	}
	return plaintext, nil
}

// Ensure FileKeystore implements Keystore
var _ Keystore = (*FileKeystore)(nil)
