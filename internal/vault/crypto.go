package vault

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/nacl/secretbox"
)

const (
	saltSize  = 16
	nonceSize = 24
	keySize   = 32

	// argon2id parameters: one pass over 64 MiB with four lanes.
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
)

// Replaceable for testing error paths.
var randRead = func(b []byte) (int, error) { return rand.Read(b) }

func deriveKey(passphrase string, salt []byte) *[keySize]byte {
	var key [keySize]byte
	copy(key[:], argon2.IDKey([]byte(passphrase), salt, argonTime, argonMemory, argonThreads, keySize))
	return &key
}

func newSalt() ([]byte, error) {
	salt := make([]byte, saltSize)
	if _, err := randRead(salt); err != nil {
		return nil, fmt.Errorf("vault: salt: %w", err)
	}
	return salt, nil
}

// seal encrypts plaintext under key. The nonce is prepended to the box.
func seal(key *[keySize]byte, plaintext []byte) ([]byte, error) {
	var nonce [nonceSize]byte
	if _, err := randRead(nonce[:]); err != nil {
		return nil, fmt.Errorf("vault: nonce: %w", err)
	}
	return secretbox.Seal(nonce[:], plaintext, &nonce, key), nil
}

func unseal(key *[keySize]byte, box []byte) ([]byte, error) {
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrDecrypt
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plaintext, ok := secretbox.Open(nil, box[nonceSize:], &nonce, key)
	if !ok {
		return nil, ErrDecrypt
	}
	return plaintext, nil
}
