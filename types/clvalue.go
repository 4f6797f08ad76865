package types

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"strings"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// CLValue is a typed argument value: the raw wire-format payload plus its
// type descriptor. Parsed is a display-only rendering and is never part of
// the bytes that get hashed.
type CLValue struct {
	ClType CLType
	Bytes  []byte
	Parsed interface{}
}

// Key variant tag bytes used inside a Key value.
const (
	KeyTagAccount byte = 0x00
	KeyTagHash    byte = 0x01
	KeyTagURef    byte = 0x02
)

// little-endian scratch writers for the fixed-width encodings

func u32LE(v uint32) []byte {
	out := make([]byte, 4)
	binary.LittleEndian.PutUint32(out, v)
	return out
}

func u64LE(v uint64) []byte {
	out := make([]byte, 8)
	binary.LittleEndian.PutUint64(out, v)
	return out
}

// stringBytes encodes a string as [u32 length][utf8 bytes].
func stringBytes(s string) []byte {
	out := u32LE(uint32(len(s)))
	return append(out, s...)
}

// NewCLValueBool encodes a Bool as a single 0x00/0x01 byte.
func NewCLValueBool(v bool) CLValue {
	b := byte(0x00)
	if v {
		b = 0x01
	}
	return CLValue{ClType: CLTypeBool, Bytes: []byte{b}, Parsed: v}
}

// NewCLValueI32 encodes an I32 as 4 little-endian bytes.
func NewCLValueI32(v int32) CLValue {
	return CLValue{ClType: CLTypeI32, Bytes: u32LE(uint32(v)), Parsed: v}
}

// NewCLValueI64 encodes an I64 as 8 little-endian bytes.
func NewCLValueI64(v int64) CLValue {
	return CLValue{ClType: CLTypeI64, Bytes: u64LE(uint64(v)), Parsed: v}
}

// NewCLValueU8 encodes a U8 as a single byte.
func NewCLValueU8(v uint8) CLValue {
	return CLValue{ClType: CLTypeU8, Bytes: []byte{v}, Parsed: v}
}

// NewCLValueU32 encodes a U32 as 4 little-endian bytes.
func NewCLValueU32(v uint32) CLValue {
	return CLValue{ClType: CLTypeU32, Bytes: u32LE(v), Parsed: v}
}

// NewCLValueU64 encodes a U64 as 8 little-endian bytes.
func NewCLValueU64(v uint64) CLValue {
	return CLValue{ClType: CLTypeU64, Bytes: u64LE(v), Parsed: v}
}

// bigBytes computes the variable-length big-number encoding: the minimal
// little-endian magnitude (at least one byte) behind a single length byte.
func bigBytes(v *big.Int) []byte {
	be := v.Bytes() // big-endian, minimal, empty for zero
	le := make([]byte, len(be))
	for i, b := range be {
		le[len(be)-1-i] = b
	}
	if len(le) == 0 {
		le = []byte{0x00}
	}
	return append([]byte{byte(len(le))}, le...)
}

// newBigValue validates and encodes one of the U128/U256/U512 widths.
func newBigValue(t CLTypeSimple, bits int, v *big.Int) (CLValue, error) {
	if v == nil {
		return CLValue{}, NewEncodingError(t.String(), "value is nil")
	}
	if v.Sign() < 0 {
		return CLValue{}, NewEncodingError(t.String(), fmt.Sprintf("value %s is negative", v.String()))
	}
	if v.BitLen() > bits {
		return CLValue{}, NewEncodingError(t.String(), fmt.Sprintf("value %s exceeds %d bits", v.String(), bits))
	}
	return CLValue{ClType: t, Bytes: bigBytes(v), Parsed: v.String()}, nil
}

// parseBigString parses a non-negative decimal integer literal.
func parseBigString(typeName, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, NewEncodingError(typeName, fmt.Sprintf("%q is not a decimal integer", s))
	}
	return v, nil
}

// NewCLValueU128 encodes a U128 from a big integer.
func NewCLValueU128(v *big.Int) (CLValue, error) {
	return newBigValue(CLTypeU128, 128, v)
}

// NewCLValueU128FromString encodes a U128 from a decimal string.
func NewCLValueU128FromString(s string) (CLValue, error) {
	v, err := parseBigString("U128", s)
	if err != nil {
		return CLValue{}, err
	}
	return NewCLValueU128(v)
}

// NewCLValueU256 encodes a U256 from a big integer.
func NewCLValueU256(v *big.Int) (CLValue, error) {
	return newBigValue(CLTypeU256, 256, v)
}

// NewCLValueU256FromString encodes a U256 from a decimal string.
func NewCLValueU256FromString(s string) (CLValue, error) {
	v, err := parseBigString("U256", s)
	if err != nil {
		return CLValue{}, err
	}
	return NewCLValueU256(v)
}

// NewCLValueU512 encodes a U512 from a big integer.
func NewCLValueU512(v *big.Int) (CLValue, error) {
	return newBigValue(CLTypeU512, 512, v)
}

// NewCLValueU512FromString encodes a U512 from a decimal string.
// Amounts (motes) are U512 on the wire, so this is the usual entry point
// for payment and transfer amounts.
func NewCLValueU512FromString(s string) (CLValue, error) {
	v, err := parseBigString("U512", s)
	if err != nil {
		return CLValue{}, err
	}
	return NewCLValueU512(v)
}

// NewCLValueString encodes a String as [u32 length][utf8 bytes].
func NewCLValueString(v string) CLValue {
	return CLValue{ClType: CLTypeString, Bytes: stringBytes(v), Parsed: v}
}

// NewCLValueUnit encodes Unit as zero bytes.
func NewCLValueUnit() CLValue {
	return CLValue{ClType: CLTypeUnit, Bytes: []byte{}, Parsed: nil}
}

// NewCLValuePublicKey encodes a public key from its prefixed bytes
// (algorithm tag byte + raw key). The bytes pass through unmodified.
func NewCLValuePublicKey(prefixed []byte) (CLValue, error) {
	if len(prefixed) < 2 {
		return CLValue{}, NewEncodingError("PublicKey", fmt.Sprintf("prefixed key too short: %d bytes", len(prefixed)))
	}
	out := make([]byte, len(prefixed))
	copy(out, prefixed)
	return CLValue{ClType: CLTypePublicKey, Bytes: out, Parsed: utils.BytesToHex(out)}, nil
}

// NewCLValuePublicKeyFromHex encodes a public key from its prefixed hex form.
func NewCLValuePublicKeyFromHex(hexKey string) (CLValue, error) {
	data, err := utils.HexToBytes(hexKey)
	if err != nil {
		return CLValue{}, WrapEncodingError("PublicKey", "invalid hex", err)
	}
	return NewCLValuePublicKey(data)
}

// NewCLValueKey encodes a Key value: a variant tag byte followed by the raw
// key bytes. Recognized variant names are "account", "hash" and "uref";
// anything else is an EncodingError.
func NewCLValueKey(variant string, raw []byte) (CLValue, error) {
	var tag byte
	switch strings.ToLower(variant) {
	case "account":
		tag = KeyTagAccount
	case "hash":
		tag = KeyTagHash
	case "uref":
		tag = KeyTagURef
	default:
		return CLValue{}, NewEncodingError("Key", fmt.Sprintf("unknown key variant %q", variant))
	}
	if len(raw) == 0 {
		return CLValue{}, NewEncodingError("Key", "key bytes are empty")
	}
	out := append([]byte{tag}, raw...)
	return CLValue{ClType: CLTypeKey, Bytes: out, Parsed: utils.BytesToHex(out)}, nil
}

// NewCLValueURef encodes a URef: the 32-byte address followed by a single
// access-rights flags byte.
func NewCLValueURef(address []byte, accessRights byte) (CLValue, error) {
	if len(address) != 32 {
		return CLValue{}, NewEncodingError("URef", fmt.Sprintf("address must be 32 bytes, got %d", len(address)))
	}
	out := make([]byte, 0, 33)
	out = append(out, address...)
	out = append(out, accessRights)
	return CLValue{ClType: CLTypeURef, Bytes: out, Parsed: utils.BytesToHex(out)}, nil
}

// NewCLValueAccountHash encodes an account hash as a ByteArray(32) value.
// The textual "account-hash-" prefix, if present, is stripped before the
// hex is decoded; rendering adds it back via the Parsed field.
func NewCLValueAccountHash(accountHash string) (CLValue, error) {
	trimmed := strings.TrimPrefix(accountHash, utils.AccountHashPrefix)
	raw, err := utils.HexToBytes(trimmed)
	if err != nil {
		return CLValue{}, WrapEncodingError("AccountHash", "invalid hex", err)
	}
	if len(raw) != 32 {
		return CLValue{}, NewEncodingError("AccountHash", fmt.Sprintf("must be 32 bytes, got %d", len(raw)))
	}
	return CLValue{
		ClType: CLTypeByteArray{Size: 32},
		Bytes:  raw,
		Parsed: utils.AccountHashPrefix + utils.BytesToHex(raw),
	}, nil
}

// NewCLValueByteArray encodes a fixed-size byte array. The length is carried
// by the type descriptor, so the payload has no length prefix.
func NewCLValueByteArray(data []byte) CLValue {
	out := make([]byte, len(data))
	copy(out, data)
	return CLValue{
		ClType: CLTypeByteArray{Size: uint32(len(data))},
		Bytes:  out,
		Parsed: utils.BytesToHex(out),
	}
}

// NewCLValueOption encodes Some(inner): a 0x01 flag byte followed by the
// inner value's bytes.
func NewCLValueOption(inner CLValue) CLValue {
	out := append([]byte{0x01}, inner.Bytes...)
	return CLValue{
		ClType: CLTypeOption{Inner: inner.ClType},
		Bytes:  out,
		Parsed: inner.Parsed,
	}
}

// NewCLValueOptionNone encodes None: a single 0x00 byte with no payload.
// The inner type is still required, since it is part of the descriptor.
func NewCLValueOptionNone(inner CLType) CLValue {
	return CLValue{
		ClType: CLTypeOption{Inner: inner},
		Bytes:  []byte{0x00},
		Parsed: nil,
	}
}

// NewCLValueList encodes a List: a u32 element count followed by each
// element's bytes. All elements must share one type.
func NewCLValueList(items []CLValue) (CLValue, error) {
	if len(items) == 0 {
		return CLValue{}, NewEncodingError("List", "cannot infer element type of an empty list; use NewCLValueEmptyList")
	}
	elemType := items[0].ClType
	out := u32LE(uint32(len(items)))
	parsed := make([]interface{}, 0, len(items))
	for i, item := range items {
		if item.ClType.String() != elemType.String() {
			return CLValue{}, NewEncodingError("List", fmt.Sprintf("element %d has type %s, want %s", i, item.ClType.String(), elemType.String()))
		}
		out = append(out, item.Bytes...)
		parsed = append(parsed, item.Parsed)
	}
	return CLValue{ClType: CLTypeList{Inner: elemType}, Bytes: out, Parsed: parsed}, nil
}

// NewCLValueEmptyList encodes a zero-element list of the given element type.
func NewCLValueEmptyList(elem CLType) CLValue {
	return CLValue{ClType: CLTypeList{Inner: elem}, Bytes: u32LE(0), Parsed: []interface{}{}}
}

// MapEntry is one key/value pair of a Map value.
type MapEntry struct {
	Key   CLValue
	Value CLValue
}

// NewCLValueMap encodes a Map: a u32 entry count followed by each entry's
// key bytes then value bytes, in the given order. All keys must share one
// type, as must all values.
func NewCLValueMap(entries []MapEntry) (CLValue, error) {
	if len(entries) == 0 {
		return CLValue{}, NewEncodingError("Map", "cannot infer key/value types of an empty map")
	}
	keyType := entries[0].Key.ClType
	valueType := entries[0].Value.ClType
	out := u32LE(uint32(len(entries)))
	for i, e := range entries {
		if e.Key.ClType.String() != keyType.String() {
			return CLValue{}, NewEncodingError("Map", fmt.Sprintf("key %d has type %s, want %s", i, e.Key.ClType.String(), keyType.String()))
		}
		if e.Value.ClType.String() != valueType.String() {
			return CLValue{}, NewEncodingError("Map", fmt.Sprintf("value %d has type %s, want %s", i, e.Value.ClType.String(), valueType.String()))
		}
		out = append(out, e.Key.Bytes...)
		out = append(out, e.Value.Bytes...)
	}
	return CLValue{ClType: CLTypeMap{Key: keyType, Value: valueType}, Bytes: out, Parsed: nil}, nil
}
