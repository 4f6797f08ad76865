package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"fmt"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// KeyAlgorithm identifies a supported signature scheme. Its byte value is
// the prefix tag carried by public keys and signatures on the wire and, in
// hex form ("01"/"02"), by their textual renderings.
type KeyAlgorithm byte

const (
	// Ed25519 keys carry tag 0x01: 32-byte private seed, 32-byte public key.
	Ed25519 KeyAlgorithm = 0x01

	// Secp256k1 keys carry tag 0x02: 32-byte private scalar, 33-byte
	// compressed public key point.
	Secp256k1 KeyAlgorithm = 0x02
)

// String returns the lowercase algorithm name used in account-hash
// derivation.
func (a KeyAlgorithm) String() string {
	switch a {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(a))
	}
}

// KeyPair is a private/public key pair of one of the supported algorithms.
//
// Sign signs a 32-byte deploy hash and returns the prefixed signature
// (algorithm tag byte + 64 signature bytes). Implementations hold no hidden
// state; every Sign call is independent and safe for concurrent use.
type KeyPair interface {
	// Algorithm returns the pair's signature scheme.
	Algorithm() KeyAlgorithm

	// PublicKey returns the prefixed public key bytes (tag + raw key).
	PublicKey() []byte

	// PublicKeyHex returns the prefixed public key as lowercase hex, the
	// canonical textual form.
	PublicKeyHex() string

	// AccountHash returns the derived account hash in its textual
	// "account-hash-<hex>" form.
	AccountHash() string

	// Sign signs a 32-byte hash and returns the prefixed signature.
	Sign(hash []byte) ([]byte, error)
}

// ed25519KeyPair signs the deploy hash directly; the scheme hashes its
// input internally, so callers must not pre-hash again.
type ed25519KeyPair struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// secp256k1KeyPair signs a SHA-256 digest of the deploy hash with ECDSA
// over the secp256k1 curve.
type secp256k1KeyPair struct {
	priv *ecdsa.PrivateKey
}

// NewEd25519KeyPair generates a fresh Ed25519 key pair from the secure
// random source.
func NewEd25519KeyPair() (KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, WrapSigningError("generate ed25519 key", err)
	}
	return &ed25519KeyPair{priv: priv, pub: pub}, nil
}

// NewSecp256k1KeyPair generates a fresh secp256k1 key pair from the secure
// random source.
func NewSecp256k1KeyPair() (KeyPair, error) {
	priv, err := ethcrypto.GenerateKey()
	if err != nil {
		return nil, WrapSigningError("generate secp256k1 key", err)
	}
	return &secp256k1KeyPair{priv: priv}, nil
}

// NewKeyPairFromPrivateKeyHex reconstructs a key pair from a 32-byte private
// key in hex (0x prefix tolerated). For Ed25519 the bytes are the seed; for
// secp256k1 they are the scalar.
func NewKeyPairFromPrivateKeyHex(algorithm KeyAlgorithm, privateKeyHex string) (KeyPair, error) {
	raw, err := utils.HexToBytes(privateKeyHex)
	if err != nil {
		return nil, WrapSigningError("decode private key hex", err)
	}
	if len(raw) != 32 {
		return nil, NewSigningError(fmt.Sprintf("invalid private key length: expected 32 bytes, got %d", len(raw)))
	}

	switch algorithm {
	case Ed25519:
		priv := ed25519.NewKeyFromSeed(raw)
		return &ed25519KeyPair{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
	case Secp256k1:
		priv, err := ethcrypto.ToECDSA(raw)
		if err != nil {
			return nil, WrapSigningError("parse secp256k1 private key", err)
		}
		return &secp256k1KeyPair{priv: priv}, nil
	default:
		return nil, NewSigningError(fmt.Sprintf("unsupported algorithm 0x%02x", byte(algorithm)))
	}
}

func (k *ed25519KeyPair) Algorithm() KeyAlgorithm { return Ed25519 }

func (k *ed25519KeyPair) PublicKey() []byte {
	return append([]byte{byte(Ed25519)}, k.pub...)
}

func (k *ed25519KeyPair) PublicKeyHex() string {
	return utils.BytesToHex(k.PublicKey())
}

func (k *ed25519KeyPair) AccountHash() string {
	// the raw key is always valid here, derivation cannot fail
	hash, _ := utils.AccountHash(Ed25519.String(), k.pub)
	return utils.AccountHashString(hash)
}

func (k *ed25519KeyPair) Sign(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, NewSigningError(fmt.Sprintf("hash must be 32 bytes, got %d", len(hash)))
	}
	sig := ed25519.Sign(k.priv, hash)
	return append([]byte{byte(Ed25519)}, sig...), nil
}

func (k *secp256k1KeyPair) Algorithm() KeyAlgorithm { return Secp256k1 }

func (k *secp256k1KeyPair) PublicKey() []byte {
	compressed := ethcrypto.CompressPubkey(&k.priv.PublicKey)
	return append([]byte{byte(Secp256k1)}, compressed...)
}

func (k *secp256k1KeyPair) PublicKeyHex() string {
	return utils.BytesToHex(k.PublicKey())
}

func (k *secp256k1KeyPair) AccountHash() string {
	hash, _ := utils.AccountHash(Secp256k1.String(), k.PublicKey()[1:])
	return utils.AccountHashString(hash)
}

func (k *secp256k1KeyPair) Sign(hash []byte) ([]byte, error) {
	if len(hash) != 32 {
		return nil, NewSigningError(fmt.Sprintf("hash must be 32 bytes, got %d", len(hash)))
	}

	// the underlying scheme signs a digest, not a message; the deploy hash
	// is digested once more before signing
	digest := sha256.Sum256(hash)

	r, s, err := ecdsa.Sign(rand.Reader, k.priv, digest[:])
	if err != nil {
		return nil, WrapSigningError("ecdsa sign", err)
	}

	// fixed-width 32-byte big-endian R and S, concatenated
	rBytes := make([]byte, 32)
	sBytes := make([]byte, 32)
	r.FillBytes(rBytes)
	s.FillBytes(sBytes)

	out := make([]byte, 0, 65)
	out = append(out, byte(Secp256k1))
	out = append(out, rBytes...)
	out = append(out, sBytes...)
	return out, nil
}
