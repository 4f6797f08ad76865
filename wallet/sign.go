package wallet

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/sha256"
	"math/big"
	"strings"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/types"
	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// SignDeploy signs the deploy hash with the given key pair and returns a
// copy of the deploy with the new approval appended.
//
// Repeated calls with different key pairs accumulate approvals (multisig).
// No deduplication is performed: signing twice with the same key produces
// two approvals. The input deploy is not mutated.
func SignDeploy(deploy *types.Deploy, keyPair KeyPair) (*types.Deploy, error) {
	if deploy == nil {
		return nil, types.NewValidationError("deploy", "deploy is not set")
	}
	if keyPair == nil {
		return nil, types.NewValidationError("key_pair", "key pair is not set")
	}

	hash, err := deploy.HashBytes()
	if err != nil {
		return nil, types.WrapEncodingError("hash", "invalid deploy hash", err)
	}

	signature, err := keyPair.Sign(hash[:])
	if err != nil {
		return nil, err
	}

	approval := types.DeployApproval{
		Signer:    keyPair.PublicKeyHex(),
		Signature: utils.BytesToHex(signature),
	}

	signed := *deploy
	signed.Approvals = make([]types.DeployApproval, 0, len(deploy.Approvals)+1)
	signed.Approvals = append(signed.Approvals, deploy.Approvals...)
	signed.Approvals = append(signed.Approvals, approval)
	return &signed, nil
}

// Verify checks a prefixed signature against a prefixed public key, both in
// hex, over a 32-byte hash in hex.
//
// The verifier is selected by the public key's two-character hex prefix:
// "01" routes to Ed25519, anything else to secp256k1. A mismatched
// signature, wrong key or wrong-length input returns false; only malformed
// hex raises an EncodingError, before any verification proceeds.
func Verify(hashHex, signatureHex, publicKeyHex string) (bool, error) {
	hash, err := utils.HexToBytes(hashHex)
	if err != nil {
		return false, types.WrapEncodingError("hash", "invalid hash hex", err)
	}
	signature, err := utils.HexToBytes(signatureHex)
	if err != nil {
		return false, types.WrapEncodingError("signature", "invalid signature hex", err)
	}
	publicKey, err := utils.HexToBytes(publicKeyHex)
	if err != nil {
		return false, types.WrapEncodingError("public_key", "invalid public key hex", err)
	}

	if len(hash) != 32 || len(publicKey) < 2 || len(signature) < 2 {
		return false, nil
	}

	// dispatch on the textual key prefix; this is a convention, not a
	// cryptographic guarantee
	prefix := strings.ToLower(utils.StripHexPrefix(publicKeyHex))[:2]
	if prefix == "01" {
		return verifyEd25519(hash, signature, publicKey), nil
	}
	return verifySecp256k1(hash, signature, publicKey), nil
}

func verifyEd25519(hash, signature, publicKey []byte) bool {
	// prefixed key: 1 tag + 32 raw; prefixed signature: 1 tag + 64 raw
	if len(publicKey) != 33 || len(signature) != 65 {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey[1:]), hash, signature[1:])
}

func verifySecp256k1(hash, signature, publicKey []byte) bool {
	// prefixed key: 1 tag + 33 compressed point; signature: 1 tag + R‖S
	if len(publicKey) != 34 || len(signature) != 65 {
		return false
	}

	pub, err := ethcrypto.DecompressPubkey(publicKey[1:])
	if err != nil {
		return false
	}

	digest := sha256.Sum256(hash)
	r := new(big.Int).SetBytes(signature[1:33])
	s := new(big.Int).SetBytes(signature[33:65])
	return ecdsa.Verify(pub, digest[:], r, s)
}

// VerifyDeployApprovals checks every approval of a deploy against the
// deploy hash. It returns false as soon as one approval fails; hex
// decoding errors propagate as EncodingError.
func VerifyDeployApprovals(deploy *types.Deploy) (bool, error) {
	if deploy == nil {
		return false, types.NewValidationError("deploy", "deploy is not set")
	}
	for _, approval := range deploy.Approvals {
		ok, err := Verify(deploy.Hash, approval.Signature, approval.Signer)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}
