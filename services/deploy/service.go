package deploy

import (
	"github.com/SamDreamsMaker/com.caspernetwork.sdk/types"
	"github.com/SamDreamsMaker/com.caspernetwork.sdk/wallet"
)

// Config carries the service-level deploy defaults. Zero values fall back
// to DefaultConfig values at build time.
type Config struct {
	// ChainName names the target network, e.g. "casper" or "casper-test".
	ChainName string

	// GasPrice is the default gas price for built deploys.
	GasPrice uint64

	// TTLMillis is the default deploy time-to-live.
	TTLMillis uint64

	// PaymentAmount is the default payment (motes, decimal string) used
	// when a request does not set its own.
	PaymentAmount string
}

// DefaultConfig returns the conventional mainnet defaults.
func DefaultConfig() *Config {
	return &Config{
		ChainName:     "casper",
		GasPrice:      1,
		TTLMillis:     types.DefaultTTLMillis,
		PaymentAmount: "100000000",
	}
}

// Service builds ready-to-submit deploys. Every method validates its
// request, assembles payment and session items, computes the body and
// deploy hashes, and — when key pairs are supplied — signs the result.
//
// The keyPairs parameter is optional on every method: if provided, the
// deploy is signed with each pair in order (multisig); otherwise the
// service's default key pair is used when one was configured, and the
// deploy is returned unsigned when there is none.
type Service interface {
	// MakeTransfer builds a native transfer deploy.
	MakeTransfer(req *TransferRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error)

	// MakeContractCallByHash builds a deploy invoking a stored contract
	// addressed by its hash.
	MakeContractCallByHash(req *ContractCallByHashRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error)

	// MakeContractCallByName builds a deploy invoking a stored contract
	// registered under a name in the sender's account.
	MakeContractCallByName(req *ContractCallByNameRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error)

	// MakeVersionedContractCallByHash builds a deploy invoking a specific
	// version of a contract package addressed by hash.
	MakeVersionedContractCallByHash(req *VersionedContractCallByHashRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error)

	// MakeVersionedContractCallByName builds a deploy invoking a specific
	// version of a named contract package.
	MakeVersionedContractCallByName(req *VersionedContractCallByNameRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error)

	// MakeModuleBytes builds a deploy running raw contract wasm.
	MakeModuleBytes(req *ModuleBytesRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error)
}

// deployService is the Service implementation.
type deployService struct {
	config  *Config
	keyPair wallet.KeyPair // optional default signer
}

// NewService creates a deploy service without a default signer.
func NewService(config *Config) Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &deployService{config: config}
}

// NewServiceWithKeyPair creates a deploy service with a default signer.
func NewServiceWithKeyPair(config *Config, keyPair wallet.KeyPair) Service {
	if config == nil {
		config = DefaultConfig()
	}
	return &deployService{config: config, keyPair: keyPair}
}

// signers resolves the key pairs to sign with: explicit parameters first,
// the configured default second, none last.
func (s *deployService) signers(keyPairs ...wallet.KeyPair) []wallet.KeyPair {
	if len(keyPairs) > 0 {
		return keyPairs
	}
	if s.keyPair != nil {
		return []wallet.KeyPair{s.keyPair}
	}
	return nil
}

// TransferRequest describes a native transfer.
type TransferRequest struct {
	SenderPublicKey string  // prefixed public key hex
	Target          string  // prefixed public key hex, or "account-hash-<hex>"
	Amount          string  // motes, decimal string
	PaymentAmount   string  // motes, decimal string; empty uses the config default
	TransferID      *uint64 // optional transfer id, rendered as Option(U64)
	TimestampMillis uint64  // optional timestamp pin, ms since epoch
	Dependencies    []string
}

// ContractCallByHashRequest describes a stored contract invocation by hash.
type ContractCallByHashRequest struct {
	SenderPublicKey string
	ContractHash    string // 32-byte contract hash, hex
	EntryPoint      string
	Args            *types.RuntimeArgs
	PaymentAmount   string
	TimestampMillis uint64
	Dependencies    []string
}

// ContractCallByNameRequest describes a stored contract invocation by name.
type ContractCallByNameRequest struct {
	SenderPublicKey string
	ContractName    string
	EntryPoint      string
	Args            *types.RuntimeArgs
	PaymentAmount   string
	TimestampMillis uint64
	Dependencies    []string
}

// VersionedContractCallByHashRequest describes a versioned package
// invocation by hash. A nil Version selects the latest enabled version.
type VersionedContractCallByHashRequest struct {
	SenderPublicKey string
	PackageHash     string // 32-byte package hash, hex
	Version         *uint32
	EntryPoint      string
	Args            *types.RuntimeArgs
	PaymentAmount   string
	TimestampMillis uint64
	Dependencies    []string
}

// VersionedContractCallByNameRequest describes a versioned package
// invocation by name. A nil Version selects the latest enabled version.
type VersionedContractCallByNameRequest struct {
	SenderPublicKey string
	PackageName     string
	Version         *uint32
	EntryPoint      string
	Args            *types.RuntimeArgs
	PaymentAmount   string
	TimestampMillis uint64
	Dependencies    []string
}

// ModuleBytesRequest describes a raw wasm execution.
type ModuleBytesRequest struct {
	SenderPublicKey string
	Wasm            []byte
	Args            *types.RuntimeArgs
	PaymentAmount   string
	TimestampMillis uint64
	Dependencies    []string
}

func (s *deployService) MakeTransfer(req *TransferRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	return s.makeTransfer(req, keyPairs...)
}

func (s *deployService) MakeContractCallByHash(req *ContractCallByHashRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	return s.makeContractCallByHash(req, keyPairs...)
}

func (s *deployService) MakeContractCallByName(req *ContractCallByNameRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	return s.makeContractCallByName(req, keyPairs...)
}

func (s *deployService) MakeVersionedContractCallByHash(req *VersionedContractCallByHashRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	return s.makeVersionedContractCallByHash(req, keyPairs...)
}

func (s *deployService) MakeVersionedContractCallByName(req *VersionedContractCallByNameRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	return s.makeVersionedContractCallByName(req, keyPairs...)
}

func (s *deployService) MakeModuleBytes(req *ModuleBytesRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	return s.makeModuleBytes(req, keyPairs...)
}
