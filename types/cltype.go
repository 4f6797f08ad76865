package types

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// CLTypeTag is the single-byte wire tag of a CLType descriptor.
type CLTypeTag byte

// Wire tags of the runtime type system. The numbering is part of the binary
// format and must not change.
const (
	CLTypeTagBool      CLTypeTag = 0
	CLTypeTagI32       CLTypeTag = 1
	CLTypeTagI64       CLTypeTag = 2
	CLTypeTagU8        CLTypeTag = 3
	CLTypeTagU32       CLTypeTag = 4
	CLTypeTagU64       CLTypeTag = 5
	CLTypeTagU128      CLTypeTag = 6
	CLTypeTagU256      CLTypeTag = 7
	CLTypeTagU512      CLTypeTag = 8
	CLTypeTagUnit      CLTypeTag = 9
	CLTypeTagString    CLTypeTag = 10
	CLTypeTagKey       CLTypeTag = 11
	CLTypeTagURef      CLTypeTag = 12
	CLTypeTagOption    CLTypeTag = 13
	CLTypeTagList      CLTypeTag = 14
	CLTypeTagByteArray CLTypeTag = 15
	CLTypeTagMap       CLTypeTag = 17
	CLTypeTagPublicKey CLTypeTag = 22
)

// CLType describes the runtime type of a CLValue.
//
// It is a closed tagged variant: the simple scalar types plus the recursive
// Option/List/ByteArray/Map composites. There is no fallback type — an
// unrecognized descriptor is an error, never a silent Unit.
type CLType interface {
	// Tag returns the wire tag byte of this type.
	Tag() CLTypeTag

	// Bytes returns the self-delimiting type-descriptor serialization:
	// the tag byte followed by any recursively encoded inner types.
	Bytes() []byte

	// String returns the human-readable name, e.g. "Option(U64)".
	String() string

	// jsonValue returns the RPC rendering of the descriptor: a bare name
	// string for simple types, a nested object for composites.
	jsonValue() interface{}
}

// CLTypeSimple is a scalar runtime type carrying no inner types.
type CLTypeSimple struct {
	tag  CLTypeTag
	name string
}

// The full set of simple types.
var (
	CLTypeBool      = CLTypeSimple{CLTypeTagBool, "Bool"}
	CLTypeI32       = CLTypeSimple{CLTypeTagI32, "I32"}
	CLTypeI64       = CLTypeSimple{CLTypeTagI64, "I64"}
	CLTypeU8        = CLTypeSimple{CLTypeTagU8, "U8"}
	CLTypeU32       = CLTypeSimple{CLTypeTagU32, "U32"}
	CLTypeU64       = CLTypeSimple{CLTypeTagU64, "U64"}
	CLTypeU128      = CLTypeSimple{CLTypeTagU128, "U128"}
	CLTypeU256      = CLTypeSimple{CLTypeTagU256, "U256"}
	CLTypeU512      = CLTypeSimple{CLTypeTagU512, "U512"}
	CLTypeUnit      = CLTypeSimple{CLTypeTagUnit, "Unit"}
	CLTypeString    = CLTypeSimple{CLTypeTagString, "String"}
	CLTypeKey       = CLTypeSimple{CLTypeTagKey, "Key"}
	CLTypeURef      = CLTypeSimple{CLTypeTagURef, "URef"}
	CLTypePublicKey = CLTypeSimple{CLTypeTagPublicKey, "PublicKey"}
)

func (t CLTypeSimple) Tag() CLTypeTag         { return t.tag }
func (t CLTypeSimple) Bytes() []byte          { return []byte{byte(t.tag)} }
func (t CLTypeSimple) String() string         { return t.name }
func (t CLTypeSimple) jsonValue() interface{} { return t.name }

// MarshalJSON renders the simple type as its bare name, e.g. "U64".
func (t CLTypeSimple) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.jsonValue())
}

// CLTypeOption is Option<Inner>.
type CLTypeOption struct {
	Inner CLType
}

func (t CLTypeOption) Tag() CLTypeTag { return CLTypeTagOption }

func (t CLTypeOption) Bytes() []byte {
	return append([]byte{byte(CLTypeTagOption)}, t.Inner.Bytes()...)
}

func (t CLTypeOption) String() string {
	return fmt.Sprintf("Option(%s)", t.Inner.String())
}

func (t CLTypeOption) jsonValue() interface{} {
	return map[string]interface{}{"Option": t.Inner.jsonValue()}
}

func (t CLTypeOption) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.jsonValue())
}

// CLTypeList is List<Inner>.
type CLTypeList struct {
	Inner CLType
}

func (t CLTypeList) Tag() CLTypeTag { return CLTypeTagList }

func (t CLTypeList) Bytes() []byte {
	return append([]byte{byte(CLTypeTagList)}, t.Inner.Bytes()...)
}

func (t CLTypeList) String() string {
	return fmt.Sprintf("List(%s)", t.Inner.String())
}

func (t CLTypeList) jsonValue() interface{} {
	return map[string]interface{}{"List": t.Inner.jsonValue()}
}

func (t CLTypeList) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.jsonValue())
}

// CLTypeByteArray is a fixed-size byte array. The size lives in the type
// descriptor, so the value bytes carry no length prefix.
type CLTypeByteArray struct {
	Size uint32
}

func (t CLTypeByteArray) Tag() CLTypeTag { return CLTypeTagByteArray }

func (t CLTypeByteArray) Bytes() []byte {
	out := make([]byte, 5)
	out[0] = byte(CLTypeTagByteArray)
	binary.LittleEndian.PutUint32(out[1:], t.Size)
	return out
}

func (t CLTypeByteArray) String() string {
	return fmt.Sprintf("ByteArray(%d)", t.Size)
}

func (t CLTypeByteArray) jsonValue() interface{} {
	return map[string]interface{}{"ByteArray": t.Size}
}

func (t CLTypeByteArray) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.jsonValue())
}

// CLTypeMap is Map<Key, Value>.
type CLTypeMap struct {
	Key   CLType
	Value CLType
}

func (t CLTypeMap) Tag() CLTypeTag { return CLTypeTagMap }

func (t CLTypeMap) Bytes() []byte {
	out := []byte{byte(CLTypeTagMap)}
	out = append(out, t.Key.Bytes()...)
	out = append(out, t.Value.Bytes()...)
	return out
}

func (t CLTypeMap) String() string {
	return fmt.Sprintf("Map(%s,%s)", t.Key.String(), t.Value.String())
}

func (t CLTypeMap) jsonValue() interface{} {
	return map[string]interface{}{
		"Map": map[string]interface{}{
			"key":   t.Key.jsonValue(),
			"value": t.Value.jsonValue(),
		},
	}
}

func (t CLTypeMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.jsonValue())
}

// simpleTypesByName indexes the simple types for JSON parsing.
var simpleTypesByName = map[string]CLTypeSimple{
	"Bool":      CLTypeBool,
	"I32":       CLTypeI32,
	"I64":       CLTypeI64,
	"U8":        CLTypeU8,
	"U32":       CLTypeU32,
	"U64":       CLTypeU64,
	"U128":      CLTypeU128,
	"U256":      CLTypeU256,
	"U512":      CLTypeU512,
	"Unit":      CLTypeUnit,
	"String":    CLTypeString,
	"Key":       CLTypeKey,
	"URef":      CLTypeURef,
	"PublicKey": CLTypePublicKey,
}

// ParseCLTypeJSON parses the RPC rendering of a type descriptor: a bare name
// string ("U64") or a nested composite object ({"Option": "U64"},
// {"ByteArray": 32}, {"Map": {"key": ..., "value": ...}}).
//
// An unknown name or malformed composite is an EncodingError.
func ParseCLTypeJSON(raw json.RawMessage) (CLType, error) {
	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		t, ok := simpleTypesByName[name]
		if !ok {
			return nil, NewEncodingError(name, "unknown type name")
		}
		return t, nil
	}

	var composite map[string]json.RawMessage
	if err := json.Unmarshal(raw, &composite); err != nil {
		return nil, WrapEncodingError("CLType", "malformed type descriptor", err)
	}
	if len(composite) != 1 {
		return nil, NewEncodingError("CLType", "composite descriptor must have exactly one key")
	}

	for kind, inner := range composite {
		switch kind {
		case "Option":
			t, err := ParseCLTypeJSON(inner)
			if err != nil {
				return nil, err
			}
			return CLTypeOption{Inner: t}, nil
		case "List":
			t, err := ParseCLTypeJSON(inner)
			if err != nil {
				return nil, err
			}
			return CLTypeList{Inner: t}, nil
		case "ByteArray":
			var size uint32
			if err := json.Unmarshal(inner, &size); err != nil {
				return nil, WrapEncodingError("ByteArray", "malformed size", err)
			}
			return CLTypeByteArray{Size: size}, nil
		case "Map":
			var kv struct {
				Key   json.RawMessage `json:"key"`
				Value json.RawMessage `json:"value"`
			}
			if err := json.Unmarshal(inner, &kv); err != nil {
				return nil, WrapEncodingError("Map", "malformed key/value descriptor", err)
			}
			if kv.Key == nil || kv.Value == nil {
				return nil, NewEncodingError("Map", "missing key or value descriptor")
			}
			keyType, err := ParseCLTypeJSON(kv.Key)
			if err != nil {
				return nil, err
			}
			valueType, err := ParseCLTypeJSON(kv.Value)
			if err != nil {
				return nil, err
			}
			return CLTypeMap{Key: keyType, Value: valueType}, nil
		default:
			return nil, NewEncodingError(kind, "unknown composite type")
		}
	}

	return nil, NewEncodingError("CLType", "empty type descriptor")
}
