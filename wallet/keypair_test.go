package wallet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

func testHash() []byte {
	hash := utils.Hash256([]byte("deploy body"))
	return hash[:]
}

func TestKeyAlgorithmString(t *testing.T) {
	if Ed25519.String() != "ed25519" {
		t.Errorf("Ed25519.String() = %q", Ed25519.String())
	}
	if Secp256k1.String() != "secp256k1" {
		t.Errorf("Secp256k1.String() = %q", Secp256k1.String())
	}
}

func TestGenerateSignVerify(t *testing.T) {
	tests := []struct {
		name      string
		generate  func() (KeyPair, error)
		algorithm KeyAlgorithm
		pubLen    int
		hexPrefix string
	}{
		{name: "ed25519", generate: NewEd25519KeyPair, algorithm: Ed25519, pubLen: 33, hexPrefix: "01"},
		{name: "secp256k1", generate: NewSecp256k1KeyPair, algorithm: Secp256k1, pubLen: 34, hexPrefix: "02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pair, err := tt.generate()
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			if pair.Algorithm() != tt.algorithm {
				t.Errorf("Algorithm() = %v, want %v", pair.Algorithm(), tt.algorithm)
			}
			if len(pair.PublicKey()) != tt.pubLen {
				t.Errorf("public key length = %d, want %d", len(pair.PublicKey()), tt.pubLen)
			}
			if !strings.HasPrefix(pair.PublicKeyHex(), tt.hexPrefix) {
				t.Errorf("PublicKeyHex() = %q, want %q prefix", pair.PublicKeyHex(), tt.hexPrefix)
			}

			hash := testHash()
			signature, err := pair.Sign(hash)
			if err != nil {
				t.Fatalf("Sign() failed: %v", err)
			}
			if len(signature) != 65 {
				t.Fatalf("signature length = %d, want 65", len(signature))
			}
			if signature[0] != byte(tt.algorithm) {
				t.Errorf("signature tag = 0x%02x, want 0x%02x", signature[0], byte(tt.algorithm))
			}

			ok, err := Verify(utils.BytesToHex(hash), utils.BytesToHex(signature), pair.PublicKeyHex())
			if err != nil {
				t.Fatalf("Verify() failed: %v", err)
			}
			if !ok {
				t.Error("Verify() rejected a valid signature")
			}
		})
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	for _, generate := range []func() (KeyPair, error){NewEd25519KeyPair, NewSecp256k1KeyPair} {
		pair, err := generate()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		hash := testHash()
		signature, err := pair.Sign(hash)
		if err != nil {
			t.Fatalf("Sign() failed: %v", err)
		}

		// flip one bit in the signature body
		tampered := bytes.Clone(signature)
		tampered[10] ^= 0x01
		ok, err := Verify(utils.BytesToHex(hash), utils.BytesToHex(tampered), pair.PublicKeyHex())
		if err != nil {
			t.Fatalf("Verify() failed: %v", err)
		}
		if ok {
			t.Errorf("%s: Verify() accepted a tampered signature", pair.Algorithm())
		}

		// flip one bit in the hash
		wrongHash := bytes.Clone(hash)
		wrongHash[0] ^= 0x01
		ok, err = Verify(utils.BytesToHex(wrongHash), utils.BytesToHex(signature), pair.PublicKeyHex())
		if err != nil {
			t.Fatalf("Verify() failed: %v", err)
		}
		if ok {
			t.Errorf("%s: Verify() accepted a signature over a different hash", pair.Algorithm())
		}

		// a different key pair must not verify
		other, err := generate()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		ok, err = Verify(utils.BytesToHex(hash), utils.BytesToHex(signature), other.PublicKeyHex())
		if err != nil {
			t.Fatalf("Verify() failed: %v", err)
		}
		if ok {
			t.Errorf("%s: Verify() accepted a signature under the wrong key", pair.Algorithm())
		}
	}
}

func TestSignRejectsWrongHashLength(t *testing.T) {
	for _, generate := range []func() (KeyPair, error){NewEd25519KeyPair, NewSecp256k1KeyPair} {
		pair, err := generate()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		if _, err := pair.Sign([]byte("short")); err == nil {
			t.Errorf("%s: Sign() accepted a non-32-byte hash", pair.Algorithm())
		} else if _, ok := IsSigningError(err); !ok {
			t.Errorf("%s: error = %v, want SigningError", pair.Algorithm(), err)
		}
	}
}

func TestNewKeyPairFromPrivateKeyHex(t *testing.T) {
	seed := strings.Repeat("7f", 32)

	for _, algorithm := range []KeyAlgorithm{Ed25519, Secp256k1} {
		pair, err := NewKeyPairFromPrivateKeyHex(algorithm, seed)
		if err != nil {
			t.Fatalf("%s: NewKeyPairFromPrivateKeyHex() failed: %v", algorithm, err)
		}

		// same bytes, same key
		again, err := NewKeyPairFromPrivateKeyHex(algorithm, "0x"+seed)
		if err != nil {
			t.Fatalf("%s: reload with 0x prefix failed: %v", algorithm, err)
		}
		if pair.PublicKeyHex() != again.PublicKeyHex() {
			t.Errorf("%s: same private key produced different public keys", algorithm)
		}

		hash := testHash()
		signature, err := pair.Sign(hash)
		if err != nil {
			t.Fatalf("%s: Sign() failed: %v", algorithm, err)
		}
		ok, err := Verify(utils.BytesToHex(hash), utils.BytesToHex(signature), pair.PublicKeyHex())
		if err != nil || !ok {
			t.Errorf("%s: signature from imported key did not verify (ok=%v, err=%v)", algorithm, ok, err)
		}
	}
}

func TestNewKeyPairFromPrivateKeyHexErrors(t *testing.T) {
	tests := []struct {
		name      string
		algorithm KeyAlgorithm
		hex       string
	}{
		{name: "short key", algorithm: Ed25519, hex: "7f7f"},
		{name: "long key", algorithm: Secp256k1, hex: strings.Repeat("7f", 33)},
		{name: "bad hex", algorithm: Ed25519, hex: "zz"},
		{name: "unknown algorithm", algorithm: KeyAlgorithm(0x09), hex: strings.Repeat("7f", 32)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewKeyPairFromPrivateKeyHex(tt.algorithm, tt.hex); err == nil {
				t.Error("NewKeyPairFromPrivateKeyHex() succeeded, want error")
			} else if _, ok := IsSigningError(err); !ok {
				t.Errorf("error = %v, want SigningError", err)
			}
		})
	}
}

func TestAccountHashFormat(t *testing.T) {
	for _, generate := range []func() (KeyPair, error){NewEd25519KeyPair, NewSecp256k1KeyPair} {
		pair, err := generate()
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		accountHash := pair.AccountHash()
		if !strings.HasPrefix(accountHash, utils.AccountHashPrefix) {
			t.Errorf("%s: AccountHash() = %q, missing %q prefix", pair.Algorithm(), accountHash, utils.AccountHashPrefix)
		}
		hexPart := strings.TrimPrefix(accountHash, utils.AccountHashPrefix)
		if len(hexPart) != 64 || !utils.IsHex(hexPart) {
			t.Errorf("%s: AccountHash() digest %q is not 64 hex characters", pair.Algorithm(), hexPart)
		}
	}
}

func TestAccountHashDistinguishesAlgorithms(t *testing.T) {
	// the algorithm name is part of the preimage, so the same raw key bytes
	// under different algorithms must hash differently
	seed := strings.Repeat("11", 32)
	ed, err := NewKeyPairFromPrivateKeyHex(Ed25519, seed)
	if err != nil {
		t.Fatalf("ed25519 import failed: %v", err)
	}
	sec, err := NewKeyPairFromPrivateKeyHex(Secp256k1, seed)
	if err != nil {
		t.Fatalf("secp256k1 import failed: %v", err)
	}
	if ed.AccountHash() == sec.AccountHash() {
		t.Error("account hashes collide across algorithms")
	}
}
