package redis

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"time"
)

const sessionKeyPrefix = "session:"

// SessionData is the token pair held by a dashboard session.
type SessionData struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// SessionStore persists dashboard sessions in Redis. Payloads are AES-GCM
// encrypted so a Redis compromise does not leak live tokens.
type SessionStore struct {
	encryptionKey []byte
}

// Indirections over the package-level Redis helpers, swapped in tests.
var (
	setSessionValue = Set
	getSessionValue = Get
	delSessionValue = Del
)

// NewSessionStore validates the hex-encoded 256-bit key and returns a store.
func NewSessionStore(encryptionKeyHex string) (*SessionStore, error) {
	key, err := hex.DecodeString(encryptionKeyHex)
	if err != nil {
		return nil, errors.New("session encryption key is not valid hex")
	}
	if len(key) != 32 {
		return nil, errors.New("session encryption key must decode to 32 bytes")
	}
	return &SessionStore{encryptionKey: key}, nil
}

// CreateSession encrypts data and writes it under the session ID.
func (s *SessionStore) CreateSession(ctx context.Context, sessionID string, data *SessionData, expiration time.Duration) error {
	plaintext, err := json.Marshal(data)
	if err != nil {
		return err
	}

	sealed, err := s.encrypt(plaintext)
	if err != nil {
		return err
	}

	return setSessionValue(ctx, sessionKeyPrefix+sessionID, sealed, expiration)
}

// GetSession reads and decrypts the session payload.
func (s *SessionStore) GetSession(ctx context.Context, sessionID string) (*SessionData, error) {
	sealed, err := getSessionValue(ctx, sessionKeyPrefix+sessionID)
	if err != nil {
		return nil, err
	}

	plaintext, err := s.decrypt(sealed)
	if err != nil {
		return nil, err
	}

	var data SessionData
	if err := json.Unmarshal(plaintext, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

// DeleteSession drops the session, ending it immediately.
func (s *SessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	return delSessionValue(ctx, sessionKeyPrefix+sessionID)
}

func (s *SessionStore) aead() (cipher.AEAD, error) {
	block, err := aes.NewCipher(s.encryptionKey)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

func (s *SessionStore) encrypt(plaintext []byte) (string, error) {
	gcm, err := s.aead()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	// Nonce is prepended to the ciphertext.
	return hex.EncodeToString(gcm.Seal(nonce, nonce, plaintext, nil)), nil
}

func (s *SessionStore) decrypt(sealedHex string) ([]byte, error) {
	sealed, err := hex.DecodeString(sealedHex)
	if err != nil {
		return nil, err
	}

	gcm, err := s.aead()
	if err != nil {
		return nil, err
	}

	if len(sealed) < gcm.NonceSize() {
		return nil, errors.New("sealed session payload too short")
	}
	nonce, ciphertext := sealed[:gcm.NonceSize()], sealed[gcm.NonceSize():]
	return gcm.Open(nil, nonce, ciphertext, nil)
}
