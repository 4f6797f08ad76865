package types

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestCLTypeSimpleTags(t *testing.T) {
	tests := []struct {
		clType CLTypeSimple
		tag    CLTypeTag
		name   string
	}{
		{CLTypeBool, 0, "Bool"},
		{CLTypeI32, 1, "I32"},
		{CLTypeI64, 2, "I64"},
		{CLTypeU8, 3, "U8"},
		{CLTypeU32, 4, "U32"},
		{CLTypeU64, 5, "U64"},
		{CLTypeU128, 6, "U128"},
		{CLTypeU256, 7, "U256"},
		{CLTypeU512, 8, "U512"},
		{CLTypeUnit, 9, "Unit"},
		{CLTypeString, 10, "String"},
		{CLTypeKey, 11, "Key"},
		{CLTypeURef, 12, "URef"},
		{CLTypePublicKey, 22, "PublicKey"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.clType.Tag() != tt.tag {
				t.Errorf("Tag() = %d, want %d", tt.clType.Tag(), tt.tag)
			}
			if tt.clType.String() != tt.name {
				t.Errorf("String() = %s, want %s", tt.clType.String(), tt.name)
			}
			if !bytes.Equal(tt.clType.Bytes(), []byte{byte(tt.tag)}) {
				t.Errorf("Bytes() = %v, want [%d]", tt.clType.Bytes(), tt.tag)
			}
		})
	}
}

func TestCLTypeCompositeBytes(t *testing.T) {
	tests := []struct {
		name   string
		clType CLType
		want   []byte
	}{
		{
			name:   "Option(U64)",
			clType: CLTypeOption{Inner: CLTypeU64},
			want:   []byte{13, 5},
		},
		{
			name:   "List(U8)",
			clType: CLTypeList{Inner: CLTypeU8},
			want:   []byte{14, 3},
		},
		{
			name:   "ByteArray(32)",
			clType: CLTypeByteArray{Size: 32},
			want:   []byte{15, 32, 0, 0, 0},
		},
		{
			name:   "Map(String,Key)",
			clType: CLTypeMap{Key: CLTypeString, Value: CLTypeKey},
			want:   []byte{17, 10, 11},
		},
		{
			name:   "Option(List(U32)) nests recursively",
			clType: CLTypeOption{Inner: CLTypeList{Inner: CLTypeU32}},
			want:   []byte{13, 14, 4},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.clType.Bytes(); !bytes.Equal(got, tt.want) {
				t.Errorf("Bytes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCLTypeString(t *testing.T) {
	composite := CLTypeMap{Key: CLTypeString, Value: CLTypeOption{Inner: CLTypeU512}}
	if got := composite.String(); got != "Map(String,Option(U512))" {
		t.Errorf("String() = %s", got)
	}
}

func TestCLTypeJSONRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		clType   CLType
		wantJSON string
	}{
		{name: "simple", clType: CLTypeU64, wantJSON: `"U64"`},
		{name: "option", clType: CLTypeOption{Inner: CLTypeU64}, wantJSON: `{"Option":"U64"}`},
		{name: "list", clType: CLTypeList{Inner: CLTypeString}, wantJSON: `{"List":"String"}`},
		{name: "byte array", clType: CLTypeByteArray{Size: 32}, wantJSON: `{"ByteArray":32}`},
		{
			name:     "map",
			clType:   CLTypeMap{Key: CLTypeString, Value: CLTypeU512},
			wantJSON: `{"Map":{"key":"String","value":"U512"}}`,
		},
		{
			name:     "nested option",
			clType:   CLTypeOption{Inner: CLTypeByteArray{Size: 32}},
			wantJSON: `{"Option":{"ByteArray":32}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.clType)
			if err != nil {
				t.Fatalf("Marshal() failed: %v", err)
			}
			if string(data) != tt.wantJSON {
				t.Errorf("Marshal() = %s, want %s", data, tt.wantJSON)
			}

			parsed, err := ParseCLTypeJSON(data)
			if err != nil {
				t.Fatalf("ParseCLTypeJSON() failed: %v", err)
			}
			if parsed.String() != tt.clType.String() {
				t.Errorf("round trip = %s, want %s", parsed.String(), tt.clType.String())
			}
			if !bytes.Equal(parsed.Bytes(), tt.clType.Bytes()) {
				t.Errorf("round-trip descriptor bytes = %v, want %v", parsed.Bytes(), tt.clType.Bytes())
			}
		})
	}
}

func TestParseCLTypeJSONRejectsUnknown(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "unknown simple name", input: `"U1024"`},
		{name: "unknown composite", input: `{"Tuple2":["U8","U8"]}`},
		{name: "multiple keys", input: `{"Option":"U64","List":"U8"}`},
		{name: "map missing value", input: `{"Map":{"key":"String"}}`},
		{name: "not a descriptor", input: `42`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCLTypeJSON(json.RawMessage(tt.input))
			if err == nil {
				t.Fatal("ParseCLTypeJSON() succeeded, want error")
			}
			if _, ok := IsEncodingError(err); !ok {
				t.Errorf("error = %v, want EncodingError", err)
			}
		})
	}
}
