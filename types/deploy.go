package types

import (
	"bytes"
	"fmt"
	"time"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// timestampSafetyMarginMs backdates the deploy timestamp to compensate for
// clock skew against the remote node, which rejects deploys stamped in its
// future.
const timestampSafetyMarginMs = 30_000

// DefaultTTLMillis is the customary deploy time-to-live (30 minutes).
const DefaultTTLMillis = 30 * 60 * 1000

// DeployHeader is the hashed envelope of a deploy. BodyHash commits to the
// serialized payment and session items; the deploy hash commits to the
// serialized header.
type DeployHeader struct {
	Account      []byte   // prefixed public key bytes (algorithm tag + raw key)
	Timestamp    uint64   // ms since epoch
	TTL          uint64   // ms
	GasPrice     uint64
	BodyHash     [32]byte
	Dependencies [][32]byte
	ChainName    string
}

// Bytes serializes the header in its fixed field order: account bytes
// (no length prefix), timestamp, ttl, gas price (u64 LE each), raw body
// hash, dependency count plus raw dependency hashes, length-prefixed chain
// name.
func (h *DeployHeader) Bytes() []byte {
	out := make([]byte, 0, len(h.Account)+8+8+8+32+4+32*len(h.Dependencies)+4+len(h.ChainName))
	out = append(out, h.Account...)
	out = append(out, u64LE(h.Timestamp)...)
	out = append(out, u64LE(h.TTL)...)
	out = append(out, u64LE(h.GasPrice)...)
	out = append(out, h.BodyHash[:]...)
	out = append(out, u32LE(uint32(len(h.Dependencies)))...)
	for _, dep := range h.Dependencies {
		out = append(out, dep[:]...)
	}
	out = append(out, stringBytes(h.ChainName)...)
	return out
}

// DeployApproval is one signature over the deploy hash. Signer is the
// prefixed public key in hex; Signature is the prefixed signature in hex.
type DeployApproval struct {
	Signer    string `json:"signer"`
	Signature string `json:"signature"`
}

// Deploy is the unit-of-work transaction submitted to the network.
//
// Hash is derived from the header, never assigned directly. Once built, a
// deploy is immutable except for appending further approvals.
type Deploy struct {
	Hash      string // hex-encoded 32-byte deploy hash
	Header    *DeployHeader
	Payment   ExecutableDeployItem
	Session   ExecutableDeployItem
	Approvals []DeployApproval
}

// DeployParams carries the caller-supplied header fields of a deploy.
type DeployParams struct {
	// Account is the sender's prefixed public key in hex. Required.
	Account string

	// ChainName names the network the deploy is valid on. Required.
	ChainName string

	// GasPrice is the conversion rate the sender is willing to pay.
	GasPrice uint64

	// TTLMillis is the deploy's time-to-live. Zero selects the default
	// 30 minutes.
	TTLMillis uint64

	// TimestampMillis pins the deploy timestamp. Zero selects the current
	// time minus the clock-skew safety margin.
	TimestampMillis uint64

	// Dependencies are hex-encoded 32-byte hashes of deploys that must be
	// executed first.
	Dependencies []string
}

// MakeDeploy builds an immutable deploy from its pieces.
//
// The build either fully succeeds or fails before any hash is computed:
// validation and hex parsing run first, then the body hash, then the header
// and deploy hash. The returned deploy carries no approvals.
func MakeDeploy(params DeployParams, payment, session ExecutableDeployItem) (*Deploy, error) {
	// 1. validate required fields
	if params.Account == "" {
		return nil, NewValidationError("account", "sender public key is not set")
	}
	if payment == nil {
		return nil, NewValidationError("payment", "payment item is not set")
	}
	if session == nil {
		return nil, NewValidationError("session", "session item is not set")
	}
	if params.ChainName == "" {
		return nil, NewValidationError("chain_name", "chain name is not set")
	}

	account, err := utils.HexToBytes(params.Account)
	if err != nil {
		return nil, WrapEncodingError("account", "invalid public key hex", err)
	}
	if len(account) < 2 {
		return nil, NewValidationError("account", fmt.Sprintf("prefixed public key too short: %d bytes", len(account)))
	}

	dependencies := make([][32]byte, 0, len(params.Dependencies))
	for i, dep := range params.Dependencies {
		hash, err := utils.HexToHash32(dep)
		if err != nil {
			return nil, WrapEncodingError("dependencies", fmt.Sprintf("dependency %d", i), err)
		}
		dependencies = append(dependencies, hash)
	}

	// 2. fill defaults
	timestamp := params.TimestampMillis
	if timestamp == 0 {
		timestamp = uint64(time.Now().UnixMilli()) - timestampSafetyMarginMs
	}
	ttl := params.TTLMillis
	if ttl == 0 {
		ttl = DefaultTTLMillis
	}
	gasPrice := params.GasPrice
	if gasPrice == 0 {
		gasPrice = 1
	}

	// 3. body hash over serialized payment then session
	body := append(payment.Bytes(), session.Bytes()...)
	bodyHash := utils.Hash256(body)

	// 4. header
	header := &DeployHeader{
		Account:      account,
		Timestamp:    timestamp,
		TTL:          ttl,
		GasPrice:     gasPrice,
		BodyHash:     bodyHash,
		Dependencies: dependencies,
		ChainName:    params.ChainName,
	}

	// 5. deploy hash over the serialized header
	deployHash := utils.Hash256(header.Bytes())

	return &Deploy{
		Hash:      utils.BytesToHex(deployHash[:]),
		Header:    header,
		Payment:   payment,
		Session:   session,
		Approvals: []DeployApproval{},
	}, nil
}

// HashBytes returns the deploy hash as raw bytes.
func (d *Deploy) HashBytes() ([32]byte, error) {
	return utils.HexToHash32(d.Hash)
}

// ValidateHashes recomputes the body hash and deploy hash from the deploy's
// own parts and checks both against the stored values. It detects any
// mutation of payment, session or header after the build.
func (d *Deploy) ValidateHashes() error {
	if d.Header == nil || d.Payment == nil || d.Session == nil {
		return NewValidationError("deploy", "header, payment and session must all be set")
	}

	body := append(d.Payment.Bytes(), d.Session.Bytes()...)
	bodyHash := utils.Hash256(body)
	if !bytes.Equal(bodyHash[:], d.Header.BodyHash[:]) {
		return NewValidationError("body_hash", fmt.Sprintf(
			"stored body hash %s does not match recomputed %s",
			utils.BytesToHex(d.Header.BodyHash[:]), utils.BytesToHex(bodyHash[:])))
	}

	deployHash := utils.Hash256(d.Header.Bytes())
	if utils.BytesToHex(deployHash[:]) != d.Hash {
		return NewValidationError("hash", fmt.Sprintf(
			"stored deploy hash %s does not match recomputed %s",
			d.Hash, utils.BytesToHex(deployHash[:])))
	}

	return nil
}
