package utils

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// StripHexPrefix removes a leading "0x" or "0X" from a hex string.
func StripHexPrefix(s string) string {
	if len(s) >= 2 && (s[:2] == "0x" || s[:2] == "0X") {
		return s[2:]
	}
	return s
}

// HexToBytes decodes a hex string, tolerating an optional 0x prefix and
// mixed case.
func HexToBytes(s string) ([]byte, error) {
	data, err := hex.DecodeString(StripHexPrefix(s))
	if err != nil {
		return nil, fmt.Errorf("invalid hex string: %w", err)
	}
	return data, nil
}

// HexToHash32 decodes a hex string that must represent exactly 32 bytes.
func HexToHash32(s string) ([32]byte, error) {
	var hash [32]byte
	data, err := HexToBytes(s)
	if err != nil {
		return hash, err
	}
	if len(data) != 32 {
		return hash, fmt.Errorf("invalid hash length: expected 32 bytes, got %d", len(data))
	}
	copy(hash[:], data)
	return hash, nil
}

// BytesToHex encodes bytes as lowercase hex without a prefix.
func BytesToHex(data []byte) string {
	return hex.EncodeToString(data)
}

// IsHex reports whether s (optionally 0x-prefixed) is a well-formed,
// even-length hex string.
func IsHex(s string) bool {
	s = StripHexPrefix(s)
	if len(s)%2 != 0 {
		return false
	}
	_, err := hex.DecodeString(strings.ToLower(s))
	return err == nil
}
