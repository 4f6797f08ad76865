package utils

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// AccountHashPrefix is the textual prefix of a rendered account hash.
const AccountHashPrefix = "account-hash-"

// Hash256 computes the network's 256-bit content hash (Blake2b-256).
//
// The same primitive is used for body hashes, deploy hashes and account-hash
// derivation; mixing primitives between these paths would produce deploys the
// network silently rejects.
func Hash256(data []byte) [32]byte {
	return blake2b.Sum256(data)
}

// AccountHash derives the on-chain account hash of a public key.
//
// The preimage is the lowercase algorithm name, a zero separator byte, and
// the raw (unprefixed) public key bytes:
//
//	Blake2b-256(lowercase(algorithm) ++ 0x00 ++ rawKey)
func AccountHash(algorithm string, rawKey []byte) ([32]byte, error) {
	if algorithm == "" {
		return [32]byte{}, fmt.Errorf("algorithm name is empty")
	}
	if len(rawKey) == 0 {
		return [32]byte{}, fmt.Errorf("public key bytes are empty")
	}

	name := strings.ToLower(algorithm)
	preimage := make([]byte, 0, len(name)+1+len(rawKey))
	preimage = append(preimage, name...)
	preimage = append(preimage, 0x00)
	preimage = append(preimage, rawKey...)

	return Hash256(preimage), nil
}

// AccountHashString renders an account hash in its textual
// "account-hash-<hex>" form.
func AccountHashString(hash [32]byte) string {
	return AccountHashPrefix + BytesToHex(hash[:])
}
