package security

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/crypto/pbkdf2"
)

// Fixed keys under which the session survives restarts.
const (
	KeyAuthToken = "authToken"
	KeyUser      = "user"
	KeyProfile   = "profile"
)

// Credential represents a securely stored credential
type Credential struct {
	// Name identifies the credential (e.g., "authToken", "user")
	Name string `json:"name"`

	// Value is the encrypted credential value
	Value string `json:"value"`

	// CreatedAt is when the credential was created
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the credential was last updated
	UpdatedAt time.Time `json:"updatedAt"`
}

// CredentialStore manages the encrypted on-disk session storage that
// survives process restarts.
type CredentialStore struct {
	mu sync.RWMutex

	// storePath is the file path where credentials are stored
	storePath string

	// masterKey is the encryption key derived from passphrase
	masterKey []byte

	// credentials maps credential names to encrypted credentials
	credentials map[string]*Credential
}

// NewCredentialStore creates a new credential store
func NewCredentialStore(storePath, passphrase string) (*CredentialStore, error) {
	// Derive master key from passphrase using PBKDF2
	salt := []byte("gather-credential-store")
	masterKey := pbkdf2.Key([]byte(passphrase), salt, 100000, 32, sha256.New)

	store := &CredentialStore{
		storePath:   storePath,
		masterKey:   masterKey,
		credentials: make(map[string]*Credential),
	}

	// Load existing credentials if store exists
	if _, err := os.Stat(storePath); err == nil {
		if err := store.load(); err != nil {
			return nil, fmt.Errorf("failed to load credentials: %w", err)
		}
	}

	return store, nil
}

// Store stores a credential securely
func (s *CredentialStore) Store(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Encrypt the value
	encryptedValue, err := s.encrypt(value)
	if err != nil {
		return fmt.Errorf("failed to encrypt credential: %w", err)
	}

	now := time.Now()

	// Check if credential already exists
	existing, exists := s.credentials[name]
	var createdAt time.Time
	if exists {
		createdAt = existing.CreatedAt
	} else {
		createdAt = now
	}

	s.credentials[name] = &Credential{
		Name:      name,
		Value:     encryptedValue,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}

	// Save to disk
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Get retrieves a credential value
func (s *CredentialStore) Get(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cred, exists := s.credentials[name]
	if !exists {
		return "", fmt.Errorf("credential %s not found", name)
	}

	// Decrypt the value
	value, err := s.decrypt(cred.Value)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt credential: %w", err)
	}

	return value, nil
}

// Has reports whether a credential exists
func (s *CredentialStore) Has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, exists := s.credentials[name]
	return exists
}

// Delete removes a credential
func (s *CredentialStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.credentials[name]; !exists {
		return fmt.Errorf("credential %s not found", name)
	}

	delete(s.credentials, name)

	// Save to disk
	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// Clear removes every stored credential. Logout relies on this wiping the
// token, user, and profile in one pass.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.credentials = make(map[string]*Credential)

	if err := s.save(); err != nil {
		return fmt.Errorf("failed to save credentials: %w", err)
	}

	return nil
}

// List returns all credential names
func (s *CredentialStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.credentials))
	for name := range s.credentials {
		names = append(names, name)
	}
	return names
}

// StoreJSON marshals a value and stores it under name
func (s *CredentialStore) StoreJSON(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return s.Store(name, string(data))
}

// GetJSON retrieves a credential and unmarshals it into target
func (s *CredentialStore) GetJSON(name string, target any) error {
	value, err := s.Get(name)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// encrypt encrypts a value using AES-GCM
func (s *CredentialStore) encrypt(plaintext string) (string, error) {
	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ciphertext := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// decrypt decrypts a value using AES-GCM
func (s *CredentialStore) decrypt(ciphertext string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", err
	}

	block, err := aes.NewCipher(s.masterKey)
	if err != nil {
		return "", err
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonceSize := gcm.NonceSize()
	if len(data) < nonceSize {
		return "", fmt.Errorf("ciphertext too short")
	}

	nonce, ciphertextBytes := data[:nonceSize], data[nonceSize:]
	plaintext, err := gcm.Open(nil, nonce, ciphertextBytes, nil)
	if err != nil {
		return "", err
	}

	return string(plaintext), nil
}

// save saves credentials to disk
func (s *CredentialStore) save() error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(s.storePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	// Marshal credentials to JSON
	data, err := json.MarshalIndent(s.credentials, "", "  ")
	if err != nil {
		return err
	}

	// Write to file with restricted permissions
	if err := os.WriteFile(s.storePath, data, 0600); err != nil {
		return err
	}

	return nil
}

// load loads credentials from disk
func (s *CredentialStore) load() error {
	data, err := os.ReadFile(s.storePath)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(data, &s.credentials); err != nil {
		return err
	}

	return nil
}
