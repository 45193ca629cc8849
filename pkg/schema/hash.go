package schema

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Hash is the fixed-size content hash identifying a block. Equality is
// byte-equality; the wire encoding is base64 in JSON bodies and lowercase
// hex in URL path segments.
type Hash [32]byte

////////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// HashFromHex decodes a 64-character lowercase hex string into a Hash.
func HashFromHex(s string) (Hash, error) {
	var h Hash
	if len(s) != len(h)*2 {
		return h, fmt.Errorf("invalid hash length %d, want %d", len(s), len(h)*2)
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash hex: %w", err)
	}
	copy(h[:], b)
	return h, nil
}

// HashFromBase64 decodes a standard-padded base64 string into a Hash.
func HashFromBase64(s string) (Hash, error) {
	var h Hash
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return h, fmt.Errorf("invalid hash base64: %w", err)
	}
	if len(b) != len(h) {
		return h, fmt.Errorf("invalid hash length %d, want %d", len(b), len(h))
	}
	copy(h[:], b)
	return h, nil
}

////////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Hex returns the lowercase hex encoding of the hash.
func (h Hash) Hex() string {
	return hex.EncodeToString(h[:])
}

// Base64 returns the standard-padded base64 encoding of the hash.
func (h Hash) Base64() string {
	return base64.StdEncoding.EncodeToString(h[:])
}

// IsZero reports whether the hash is the zero value.
func (h Hash) IsZero() bool {
	return h == Hash{}
}

func (h Hash) String() string {
	return h.Hex()
}

////////////////////////////////////////////////////////////////////////////////
// JSON

// MarshalText encodes the hash as base64, matching the wire format used in
// request and response bodies.
func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.Base64()), nil
}

// UnmarshalText decodes a base64-encoded hash.
func (h *Hash) UnmarshalText(data []byte) error {
	v, err := HashFromBase64(string(data))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

////////////////////////////////////////////////////////////////////////////////
// STRING/BASE64 CODEC (path and link fields)

// EncodeString base64-encodes a path or link field so that it survives the
// comma/quote-sensitive journal line format unescaped.
func EncodeString(s string) string {
	if s == "" {
		return ""
	}
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeString reverses EncodeString, tolerating an empty input as an empty
// string.
func DecodeString(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("invalid base64 string: %w", err)
	}
	return string(b), nil
}
