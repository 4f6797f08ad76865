package deploy

import (
	"fmt"
	"strings"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/types"
	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
	"github.com/SamDreamsMaker/com.caspernetwork.sdk/wallet"
)

// StandardPayment builds the conventional payment item: an empty
// ModuleBytes carrying a single "amount" U512 argument.
func StandardPayment(amount string) (*types.ModuleBytes, error) {
	value, err := types.NewCLValueU512FromString(amount)
	if err != nil {
		return nil, fmt.Errorf("encode payment amount failed: %w", err)
	}
	args := types.NewRuntimeArgs().Insert("amount", value)
	return types.NewModuleBytes(nil, args), nil
}

// transferTarget encodes a transfer target: a prefixed public key in hex,
// or an account hash in its "account-hash-<hex>" form.
func transferTarget(target string) (types.CLValue, error) {
	if strings.HasPrefix(target, utils.AccountHashPrefix) {
		return types.NewCLValueAccountHash(target)
	}
	return types.NewCLValuePublicKeyFromHex(target)
}

// buildTransferSession assembles the session item of a native transfer:
// amount (U512), target, and the optional transfer id as Option(U64).
func buildTransferSession(req *TransferRequest) (*types.Transfer, error) {
	amount, err := types.NewCLValueU512FromString(req.Amount)
	if err != nil {
		return nil, fmt.Errorf("encode transfer amount failed: %w", err)
	}

	target, err := transferTarget(req.Target)
	if err != nil {
		return nil, fmt.Errorf("encode transfer target failed: %w", err)
	}

	var id types.CLValue
	if req.TransferID != nil {
		id = types.NewCLValueOption(types.NewCLValueU64(*req.TransferID))
	} else {
		id = types.NewCLValueOptionNone(types.CLTypeU64)
	}

	args := types.NewRuntimeArgs().
		Insert("amount", amount).
		Insert("target", target).
		Insert("id", id)
	return types.NewTransfer(args), nil
}

// paymentAmount resolves a request payment against the config default.
func (s *deployService) paymentAmount(requested string) string {
	if requested != "" {
		return requested
	}
	return s.config.PaymentAmount
}

// deployParams assembles the header parameters shared by every builder.
func (s *deployService) deployParams(sender string, timestamp uint64, dependencies []string) types.DeployParams {
	return types.DeployParams{
		Account:         sender,
		ChainName:       s.config.ChainName,
		GasPrice:        s.config.GasPrice,
		TTLMillis:       s.config.TTLMillis,
		TimestampMillis: timestamp,
		Dependencies:    dependencies,
	}
}

// build runs the shared tail of every Make method: standard payment,
// MakeDeploy, then signing with the resolved key pairs.
func (s *deployService) build(sender string, timestamp uint64, dependencies []string, payment string, session types.ExecutableDeployItem, keyPairs []wallet.KeyPair) (*types.Deploy, error) {
	paymentItem, err := StandardPayment(s.paymentAmount(payment))
	if err != nil {
		return nil, err
	}

	d, err := types.MakeDeploy(s.deployParams(sender, timestamp, dependencies), paymentItem, session)
	if err != nil {
		return nil, fmt.Errorf("make deploy failed: %w", err)
	}

	for _, keyPair := range s.signers(keyPairs...) {
		d, err = wallet.SignDeploy(d, keyPair)
		if err != nil {
			return nil, fmt.Errorf("sign deploy failed: %w", err)
		}
	}
	return d, nil
}

func (s *deployService) makeTransfer(req *TransferRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	// 1. validate the request
	if req == nil {
		return nil, types.NewValidationError("request", "transfer request is not set")
	}
	if req.SenderPublicKey == "" {
		return nil, types.NewValidationError("sender_public_key", "sender public key is not set")
	}
	if req.Target == "" {
		return nil, types.NewValidationError("target", "transfer target is not set")
	}
	if req.Amount == "" {
		return nil, types.NewValidationError("amount", "transfer amount is not set")
	}

	// 2. assemble the session item
	session, err := buildTransferSession(req)
	if err != nil {
		return nil, err
	}

	// 3. build and sign
	return s.build(req.SenderPublicKey, req.TimestampMillis, req.Dependencies, req.PaymentAmount, session, keyPairs)
}

func (s *deployService) makeContractCallByHash(req *ContractCallByHashRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	if req == nil {
		return nil, types.NewValidationError("request", "contract call request is not set")
	}
	if req.SenderPublicKey == "" {
		return nil, types.NewValidationError("sender_public_key", "sender public key is not set")
	}
	if req.ContractHash == "" {
		return nil, types.NewValidationError("contract_hash", "contract hash is not set")
	}
	if req.EntryPoint == "" {
		return nil, types.NewValidationError("entry_point", "entry point is not set")
	}

	session, err := types.NewStoredContractByHash(req.ContractHash, req.EntryPoint, req.Args)
	if err != nil {
		return nil, err
	}

	return s.build(req.SenderPublicKey, req.TimestampMillis, req.Dependencies, req.PaymentAmount, session, keyPairs)
}

func (s *deployService) makeContractCallByName(req *ContractCallByNameRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	if req == nil {
		return nil, types.NewValidationError("request", "contract call request is not set")
	}
	if req.SenderPublicKey == "" {
		return nil, types.NewValidationError("sender_public_key", "sender public key is not set")
	}
	if req.ContractName == "" {
		return nil, types.NewValidationError("contract_name", "contract name is not set")
	}
	if req.EntryPoint == "" {
		return nil, types.NewValidationError("entry_point", "entry point is not set")
	}

	session := types.NewStoredContractByName(req.ContractName, req.EntryPoint, req.Args)
	return s.build(req.SenderPublicKey, req.TimestampMillis, req.Dependencies, req.PaymentAmount, session, keyPairs)
}

func (s *deployService) makeVersionedContractCallByHash(req *VersionedContractCallByHashRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	if req == nil {
		return nil, types.NewValidationError("request", "contract call request is not set")
	}
	if req.SenderPublicKey == "" {
		return nil, types.NewValidationError("sender_public_key", "sender public key is not set")
	}
	if req.PackageHash == "" {
		return nil, types.NewValidationError("package_hash", "package hash is not set")
	}
	if req.EntryPoint == "" {
		return nil, types.NewValidationError("entry_point", "entry point is not set")
	}

	session, err := types.NewStoredVersionedContractByHash(req.PackageHash, req.Version, req.EntryPoint, req.Args)
	if err != nil {
		return nil, err
	}

	return s.build(req.SenderPublicKey, req.TimestampMillis, req.Dependencies, req.PaymentAmount, session, keyPairs)
}

func (s *deployService) makeVersionedContractCallByName(req *VersionedContractCallByNameRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	if req == nil {
		return nil, types.NewValidationError("request", "contract call request is not set")
	}
	if req.SenderPublicKey == "" {
		return nil, types.NewValidationError("sender_public_key", "sender public key is not set")
	}
	if req.PackageName == "" {
		return nil, types.NewValidationError("package_name", "package name is not set")
	}
	if req.EntryPoint == "" {
		return nil, types.NewValidationError("entry_point", "entry point is not set")
	}

	session := types.NewStoredVersionedContractByName(req.PackageName, req.Version, req.EntryPoint, req.Args)
	return s.build(req.SenderPublicKey, req.TimestampMillis, req.Dependencies, req.PaymentAmount, session, keyPairs)
}

func (s *deployService) makeModuleBytes(req *ModuleBytesRequest, keyPairs ...wallet.KeyPair) (*types.Deploy, error) {
	if req == nil {
		return nil, types.NewValidationError("request", "module bytes request is not set")
	}
	if req.SenderPublicKey == "" {
		return nil, types.NewValidationError("sender_public_key", "sender public key is not set")
	}
	if len(req.Wasm) == 0 {
		return nil, types.NewValidationError("wasm", "module bytes are empty")
	}

	session := types.NewModuleBytes(req.Wasm, req.Args)
	return s.build(req.SenderPublicKey, req.TimestampMillis, req.Dependencies, req.PaymentAmount, session, keyPairs)
}
