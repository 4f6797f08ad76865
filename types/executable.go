package types

import (
	"encoding/binary"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// Variant tag bytes of an ExecutableDeployItem. Tag order is part of the
// binary format.
const (
	TagModuleBytes                   byte = 0
	TagStoredContractByHash          byte = 1
	TagStoredContractByName          byte = 2
	TagStoredVersionedContractByHash byte = 3
	TagStoredVersionedContractByName byte = 4
	TagTransfer                      byte = 5
)

// ExecutableDeployItem is the payment or session half of a deploy: one of
// the six tagged action variants. Bytes() emits the variant tag, the
// variant's own fields, then the serialized argument list.
type ExecutableDeployItem interface {
	// Tag returns the variant tag byte.
	Tag() byte

	// Bytes returns the canonical binary serialization.
	Bytes() []byte

	// Args returns the item's runtime arguments.
	Args() *RuntimeArgs

	// jsonEntry returns the JSON-RPC rendering: the variant name and its
	// field object.
	jsonEntry() (string, interface{})
}

// ModuleBytes carries raw contract wasm to run; with empty module bytes it
// doubles as the standard payment item.
type ModuleBytes struct {
	Module []byte
	args   *RuntimeArgs
}

// NewModuleBytes creates a ModuleBytes item. A nil module is encoded as a
// zero-length byte string.
func NewModuleBytes(module []byte, args *RuntimeArgs) *ModuleBytes {
	if args == nil {
		args = NewRuntimeArgs()
	}
	return &ModuleBytes{Module: module, args: args}
}

func (m *ModuleBytes) Tag() byte          { return TagModuleBytes }
func (m *ModuleBytes) Args() *RuntimeArgs { return m.args }

func (m *ModuleBytes) Bytes() []byte {
	out := []byte{TagModuleBytes}
	out = append(out, u32LE(uint32(len(m.Module)))...)
	out = append(out, m.Module...)
	out = append(out, m.args.Bytes()...)
	return out
}

func (m *ModuleBytes) jsonEntry() (string, interface{}) {
	return "ModuleBytes", map[string]interface{}{
		"module_bytes": utils.BytesToHex(m.Module),
		"args":         m.args,
	}
}

// StoredContractByHash invokes an entry point of a contract addressed by its
// 32-byte hash.
type StoredContractByHash struct {
	Hash       [32]byte
	EntryPoint string
	args       *RuntimeArgs
}

// NewStoredContractByHash creates a StoredContractByHash item from the
// contract hash in hex form.
func NewStoredContractByHash(hashHex, entryPoint string, args *RuntimeArgs) (*StoredContractByHash, error) {
	hash, err := utils.HexToHash32(hashHex)
	if err != nil {
		return nil, WrapEncodingError("StoredContractByHash", "invalid contract hash", err)
	}
	if args == nil {
		args = NewRuntimeArgs()
	}
	return &StoredContractByHash{Hash: hash, EntryPoint: entryPoint, args: args}, nil
}

func (s *StoredContractByHash) Tag() byte          { return TagStoredContractByHash }
func (s *StoredContractByHash) Args() *RuntimeArgs { return s.args }

func (s *StoredContractByHash) Bytes() []byte {
	out := []byte{TagStoredContractByHash}
	out = append(out, s.Hash[:]...)
	out = append(out, stringBytes(s.EntryPoint)...)
	out = append(out, s.args.Bytes()...)
	return out
}

func (s *StoredContractByHash) jsonEntry() (string, interface{}) {
	return "StoredContractByHash", map[string]interface{}{
		"hash":        utils.BytesToHex(s.Hash[:]),
		"entry_point": s.EntryPoint,
		"args":        s.args,
	}
}

// StoredContractByName invokes an entry point of a contract registered under
// a name in the caller's account.
type StoredContractByName struct {
	Name       string
	EntryPoint string
	args       *RuntimeArgs
}

// NewStoredContractByName creates a StoredContractByName item.
func NewStoredContractByName(name, entryPoint string, args *RuntimeArgs) *StoredContractByName {
	if args == nil {
		args = NewRuntimeArgs()
	}
	return &StoredContractByName{Name: name, EntryPoint: entryPoint, args: args}
}

func (s *StoredContractByName) Tag() byte          { return TagStoredContractByName }
func (s *StoredContractByName) Args() *RuntimeArgs { return s.args }

func (s *StoredContractByName) Bytes() []byte {
	out := []byte{TagStoredContractByName}
	out = append(out, stringBytes(s.Name)...)
	out = append(out, stringBytes(s.EntryPoint)...)
	out = append(out, s.args.Bytes()...)
	return out
}

func (s *StoredContractByName) jsonEntry() (string, interface{}) {
	return "StoredContractByName", map[string]interface{}{
		"name":        s.Name,
		"entry_point": s.EntryPoint,
		"args":        s.args,
	}
}

// versionBytes encodes an optional contract version as Option<u32>.
func versionBytes(version *uint32) []byte {
	if version == nil {
		return []byte{0x00}
	}
	out := make([]byte, 5)
	out[0] = 0x01
	binary.LittleEndian.PutUint32(out[1:], *version)
	return out
}

// StoredVersionedContractByHash invokes a specific version (or the latest,
// when Version is nil) of a contract package addressed by hash.
type StoredVersionedContractByHash struct {
	Hash       [32]byte
	Version    *uint32
	EntryPoint string
	args       *RuntimeArgs
}

// NewStoredVersionedContractByHash creates a StoredVersionedContractByHash
// item from the package hash in hex form. A nil version selects the latest
// enabled contract version.
func NewStoredVersionedContractByHash(hashHex string, version *uint32, entryPoint string, args *RuntimeArgs) (*StoredVersionedContractByHash, error) {
	hash, err := utils.HexToHash32(hashHex)
	if err != nil {
		return nil, WrapEncodingError("StoredVersionedContractByHash", "invalid package hash", err)
	}
	if args == nil {
		args = NewRuntimeArgs()
	}
	return &StoredVersionedContractByHash{Hash: hash, Version: version, EntryPoint: entryPoint, args: args}, nil
}

func (s *StoredVersionedContractByHash) Tag() byte          { return TagStoredVersionedContractByHash }
func (s *StoredVersionedContractByHash) Args() *RuntimeArgs { return s.args }

func (s *StoredVersionedContractByHash) Bytes() []byte {
	out := []byte{TagStoredVersionedContractByHash}
	out = append(out, s.Hash[:]...)
	out = append(out, versionBytes(s.Version)...)
	out = append(out, stringBytes(s.EntryPoint)...)
	out = append(out, s.args.Bytes()...)
	return out
}

func (s *StoredVersionedContractByHash) jsonEntry() (string, interface{}) {
	return "StoredVersionedContractByHash", map[string]interface{}{
		"hash":        utils.BytesToHex(s.Hash[:]),
		"version":     s.Version,
		"entry_point": s.EntryPoint,
		"args":        s.args,
	}
}

// StoredVersionedContractByName invokes a specific version (or the latest,
// when Version is nil) of a named contract package.
type StoredVersionedContractByName struct {
	Name       string
	Version    *uint32
	EntryPoint string
	args       *RuntimeArgs
}

// NewStoredVersionedContractByName creates a StoredVersionedContractByName
// item. A nil version selects the latest enabled contract version.
func NewStoredVersionedContractByName(name string, version *uint32, entryPoint string, args *RuntimeArgs) *StoredVersionedContractByName {
	if args == nil {
		args = NewRuntimeArgs()
	}
	return &StoredVersionedContractByName{Name: name, Version: version, EntryPoint: entryPoint, args: args}
}

func (s *StoredVersionedContractByName) Tag() byte          { return TagStoredVersionedContractByName }
func (s *StoredVersionedContractByName) Args() *RuntimeArgs { return s.args }

func (s *StoredVersionedContractByName) Bytes() []byte {
	out := []byte{TagStoredVersionedContractByName}
	out = append(out, stringBytes(s.Name)...)
	out = append(out, versionBytes(s.Version)...)
	out = append(out, stringBytes(s.EntryPoint)...)
	out = append(out, s.args.Bytes()...)
	return out
}

func (s *StoredVersionedContractByName) jsonEntry() (string, interface{}) {
	return "StoredVersionedContractByName", map[string]interface{}{
		"name":        s.Name,
		"version":     s.Version,
		"entry_point": s.EntryPoint,
		"args":        s.args,
	}
}

// Transfer is a native token transfer; it carries only arguments.
type Transfer struct {
	args *RuntimeArgs
}

// NewTransfer creates a Transfer item.
func NewTransfer(args *RuntimeArgs) *Transfer {
	if args == nil {
		args = NewRuntimeArgs()
	}
	return &Transfer{args: args}
}

func (t *Transfer) Tag() byte          { return TagTransfer }
func (t *Transfer) Args() *RuntimeArgs { return t.args }

func (t *Transfer) Bytes() []byte {
	out := []byte{TagTransfer}
	out = append(out, t.args.Bytes()...)
	return out
}

func (t *Transfer) jsonEntry() (string, interface{}) {
	return "Transfer", map[string]interface{}{
		"args": t.args,
	}
}
