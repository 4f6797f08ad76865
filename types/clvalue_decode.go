package types

import (
	"encoding/binary"
	"fmt"
	"math/big"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// byteReader consumes a value payload front to back.
type byteReader struct {
	data []byte
	pos  int
}

func (r *byteReader) remaining() int {
	return len(r.data) - r.pos
}

func (r *byteReader) read(n int) ([]byte, error) {
	if r.remaining() < n {
		return nil, NewEncodingError("CLValue", fmt.Sprintf("unexpected end of input: need %d bytes, have %d", n, r.remaining()))
	}
	out := r.data[r.pos : r.pos+n]
	r.pos += n
	return out, nil
}

func (r *byteReader) readByte() (byte, error) {
	b, err := r.read(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *byteReader) readU32() (uint32, error) {
	b, err := r.read(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (r *byteReader) readU64() (uint64, error) {
	b, err := r.read(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// DecodeCLValue decodes a value payload against its type descriptor and
// returns the reconstructed CLValue. The whole payload must be consumed;
// trailing bytes are an EncodingError.
func DecodeCLValue(t CLType, data []byte) (CLValue, error) {
	r := &byteReader{data: data}
	v, err := decodeValue(t, r)
	if err != nil {
		return CLValue{}, err
	}
	if r.remaining() != 0 {
		return CLValue{}, NewEncodingError(t.String(), fmt.Sprintf("%d trailing bytes after value", r.remaining()))
	}
	return v, nil
}

func decodeValue(t CLType, r *byteReader) (CLValue, error) {
	start := r.pos

	parsed, err := decodeParsed(t, r)
	if err != nil {
		return CLValue{}, err
	}

	consumed := make([]byte, r.pos-start)
	copy(consumed, r.data[start:r.pos])
	return CLValue{ClType: t, Bytes: consumed, Parsed: parsed}, nil
}

// decodeParsed consumes one value of type t and returns its display form.
func decodeParsed(t CLType, r *byteReader) (interface{}, error) {
	switch ct := t.(type) {
	case CLTypeSimple:
		return decodeSimple(ct, r)

	case CLTypeOption:
		flag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		switch flag {
		case 0x00:
			return nil, nil
		case 0x01:
			return decodeParsed(ct.Inner, r)
		default:
			return nil, NewEncodingError(t.String(), fmt.Sprintf("invalid option flag 0x%02x", flag))
		}

	case CLTypeList:
		count, err := r.readU32()
		if err != nil {
			return nil, err
		}
		items := make([]interface{}, 0, count)
		for i := uint32(0); i < count; i++ {
			item, err := decodeParsed(ct.Inner, r)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil

	case CLTypeByteArray:
		raw, err := r.read(int(ct.Size))
		if err != nil {
			return nil, err
		}
		return utils.BytesToHex(raw), nil

	case CLTypeMap:
		count, err := r.readU32()
		if err != nil {
			return nil, err
		}
		entries := make([]map[string]interface{}, 0, count)
		for i := uint32(0); i < count; i++ {
			key, err := decodeParsed(ct.Key, r)
			if err != nil {
				return nil, err
			}
			value, err := decodeParsed(ct.Value, r)
			if err != nil {
				return nil, err
			}
			entries = append(entries, map[string]interface{}{"key": key, "value": value})
		}
		return entries, nil

	default:
		return nil, NewEncodingError(t.String(), "unsupported type descriptor")
	}
}

func decodeSimple(t CLTypeSimple, r *byteReader) (interface{}, error) {
	switch t.Tag() {
	case CLTypeTagBool:
		b, err := r.readByte()
		if err != nil {
			return nil, err
		}
		switch b {
		case 0x00:
			return false, nil
		case 0x01:
			return true, nil
		default:
			return nil, NewEncodingError("Bool", fmt.Sprintf("invalid bool byte 0x%02x", b))
		}

	case CLTypeTagI32:
		v, err := r.readU32()
		if err != nil {
			return nil, err
		}
		return int32(v), nil

	case CLTypeTagI64:
		v, err := r.readU64()
		if err != nil {
			return nil, err
		}
		return int64(v), nil

	case CLTypeTagU8:
		return r.readByte()

	case CLTypeTagU32:
		return r.readU32()

	case CLTypeTagU64:
		return r.readU64()

	case CLTypeTagU128, CLTypeTagU256, CLTypeTagU512:
		return decodeBig(t, r)

	case CLTypeTagString:
		length, err := r.readU32()
		if err != nil {
			return nil, err
		}
		raw, err := r.read(int(length))
		if err != nil {
			return nil, err
		}
		return string(raw), nil

	case CLTypeTagUnit:
		return nil, nil

	case CLTypeTagKey:
		tag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		if tag != KeyTagAccount && tag != KeyTagHash && tag != KeyTagURef {
			return nil, NewEncodingError("Key", fmt.Sprintf("unknown key variant tag 0x%02x", tag))
		}
		size := 32
		if tag == KeyTagURef {
			size = 33 // 32-byte address plus access-rights byte
		}
		raw, err := r.read(size)
		if err != nil {
			return nil, err
		}
		return utils.BytesToHex(append([]byte{tag}, raw...)), nil

	case CLTypeTagURef:
		raw, err := r.read(33)
		if err != nil {
			return nil, err
		}
		return utils.BytesToHex(raw), nil

	case CLTypeTagPublicKey:
		tag, err := r.readByte()
		if err != nil {
			return nil, err
		}
		var size int
		switch tag {
		case 0x01:
			size = 32
		case 0x02:
			size = 33
		default:
			return nil, NewEncodingError("PublicKey", fmt.Sprintf("unknown algorithm tag 0x%02x", tag))
		}
		raw, err := r.read(size)
		if err != nil {
			return nil, err
		}
		return utils.BytesToHex(append([]byte{tag}, raw...)), nil

	default:
		return nil, NewEncodingError(t.String(), "unsupported simple type")
	}
}

// decodeBig reads a length-prefixed little-endian magnitude and returns its
// decimal rendering.
func decodeBig(t CLTypeSimple, r *byteReader) (interface{}, error) {
	length, err := r.readByte()
	if err != nil {
		return nil, err
	}
	if length == 0 {
		return nil, NewEncodingError(t.String(), "zero-length magnitude")
	}
	le, err := r.read(int(length))
	if err != nil {
		return nil, err
	}
	be := make([]byte, len(le))
	for i, b := range le {
		be[len(le)-1-i] = b
	}
	return new(big.Int).SetBytes(be).String(), nil
}
