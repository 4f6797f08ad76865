package types

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

// JSON rendering of a deploy for the JSON-RPC submission envelope.
//
// This rendering is deliberately distinct from the binary wire format the
// hashes are computed over: type descriptors become nested objects, byte
// fields become hex strings, the timestamp becomes ISO-8601 and the TTL a
// humanized duration. Marshal followed by Unmarshal reproduces the same
// logical deploy; hashes are carried, not recomputed.

// timestampLayout is millisecond-precision ISO-8601 UTC with a literal Z.
const timestampLayout = "2006-01-02T15:04:05.000Z"

// FormatTimestamp renders a ms-since-epoch timestamp for the RPC envelope.
func FormatTimestamp(millis uint64) string {
	return time.UnixMilli(int64(millis)).UTC().Format(timestampLayout)
}

// ParseTimestamp parses the RPC envelope timestamp back to ms since epoch.
func ParseTimestamp(s string) (uint64, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return 0, WrapEncodingError("timestamp", "invalid ISO-8601 timestamp", err)
	}
	return uint64(t.UnixMilli()), nil
}

// FormatTTL renders a millisecond TTL in the envelope's humanized form,
// e.g. "30m", "1h", "500ms".
func FormatTTL(millis uint64) string {
	switch {
	case millis != 0 && millis%3_600_000 == 0:
		return fmt.Sprintf("%dh", millis/3_600_000)
	case millis != 0 && millis%60_000 == 0:
		return fmt.Sprintf("%dm", millis/60_000)
	case millis != 0 && millis%1_000 == 0:
		return fmt.Sprintf("%ds", millis/1_000)
	default:
		return fmt.Sprintf("%dms", millis)
	}
}

// ParseTTL parses a humanized TTL back to milliseconds.
func ParseTTL(s string) (uint64, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, WrapEncodingError("ttl", "invalid duration", err)
	}
	if d < 0 {
		return 0, NewEncodingError("ttl", "duration is negative")
	}
	return uint64(d.Milliseconds()), nil
}

// MarshalJSON renders the value as {"cl_type": ..., "bytes": ..., "parsed": ...}.
func (v CLValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"cl_type": v.ClType.jsonValue(),
		"bytes":   utils.BytesToHex(v.Bytes),
		"parsed":  v.Parsed,
	})
}

// UnmarshalJSON parses the envelope rendering of a value.
func (v *CLValue) UnmarshalJSON(data []byte) error {
	var raw struct {
		ClType json.RawMessage `json:"cl_type"`
		Bytes  string          `json:"bytes"`
		Parsed interface{}     `json:"parsed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return WrapEncodingError("CLValue", "malformed value object", err)
	}
	if raw.ClType == nil {
		return NewEncodingError("CLValue", "missing cl_type")
	}
	clType, err := ParseCLTypeJSON(raw.ClType)
	if err != nil {
		return err
	}
	payload, err := utils.HexToBytes(raw.Bytes)
	if err != nil {
		return WrapEncodingError(clType.String(), "invalid value hex", err)
	}
	v.ClType = clType
	v.Bytes = payload
	v.Parsed = raw.Parsed
	return nil
}

// MarshalJSON renders the argument list as an array of [name, value] pairs,
// preserving insertion order.
func (a *RuntimeArgs) MarshalJSON() ([]byte, error) {
	pairs := make([][2]interface{}, 0, a.Len())
	for _, arg := range a.List() {
		pairs = append(pairs, [2]interface{}{arg.Name, arg.Value})
	}
	return json.Marshal(pairs)
}

// UnmarshalJSON parses the [name, value] pair rendering.
func (a *RuntimeArgs) UnmarshalJSON(data []byte) error {
	var pairs []json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return WrapEncodingError("args", "malformed argument list", err)
	}
	a.args = nil
	for i, pair := range pairs {
		var entry []json.RawMessage
		if err := json.Unmarshal(pair, &entry); err != nil || len(entry) != 2 {
			return NewEncodingError("args", fmt.Sprintf("argument %d is not a [name, value] pair", i))
		}
		var name string
		if err := json.Unmarshal(entry[0], &name); err != nil {
			return WrapEncodingError("args", fmt.Sprintf("argument %d name", i), err)
		}
		var value CLValue
		if err := json.Unmarshal(entry[1], &value); err != nil {
			return err
		}
		a.Insert(name, value)
	}
	return nil
}

// marshalItem wraps an executable item in its single-key variant object.
func marshalItem(item ExecutableDeployItem) (json.RawMessage, error) {
	name, fields := item.jsonEntry()
	return json.Marshal(map[string]interface{}{name: fields})
}

// parseItem reads the single-key variant object back into an item.
func parseItem(raw json.RawMessage) (ExecutableDeployItem, error) {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, WrapEncodingError("item", "malformed executable item", err)
	}
	if len(wrapper) != 1 {
		return nil, NewEncodingError("item", "executable item must have exactly one variant key")
	}

	for variant, fields := range wrapper {
		switch variant {
		case "ModuleBytes":
			var f struct {
				ModuleBytes string       `json:"module_bytes"`
				Args        *RuntimeArgs `json:"args"`
			}
			if err := json.Unmarshal(fields, &f); err != nil {
				return nil, WrapEncodingError(variant, "malformed fields", err)
			}
			module, err := utils.HexToBytes(f.ModuleBytes)
			if err != nil {
				return nil, WrapEncodingError(variant, "invalid module bytes hex", err)
			}
			return NewModuleBytes(module, f.Args), nil

		case "StoredContractByHash":
			var f struct {
				Hash       string       `json:"hash"`
				EntryPoint string       `json:"entry_point"`
				Args       *RuntimeArgs `json:"args"`
			}
			if err := json.Unmarshal(fields, &f); err != nil {
				return nil, WrapEncodingError(variant, "malformed fields", err)
			}
			return NewStoredContractByHash(f.Hash, f.EntryPoint, f.Args)

		case "StoredContractByName":
			var f struct {
				Name       string       `json:"name"`
				EntryPoint string       `json:"entry_point"`
				Args       *RuntimeArgs `json:"args"`
			}
			if err := json.Unmarshal(fields, &f); err != nil {
				return nil, WrapEncodingError(variant, "malformed fields", err)
			}
			return NewStoredContractByName(f.Name, f.EntryPoint, f.Args), nil

		case "StoredVersionedContractByHash":
			var f struct {
				Hash       string       `json:"hash"`
				Version    *uint32      `json:"version"`
				EntryPoint string       `json:"entry_point"`
				Args       *RuntimeArgs `json:"args"`
			}
			if err := json.Unmarshal(fields, &f); err != nil {
				return nil, WrapEncodingError(variant, "malformed fields", err)
			}
			return NewStoredVersionedContractByHash(f.Hash, f.Version, f.EntryPoint, f.Args)

		case "StoredVersionedContractByName":
			var f struct {
				Name       string       `json:"name"`
				Version    *uint32      `json:"version"`
				EntryPoint string       `json:"entry_point"`
				Args       *RuntimeArgs `json:"args"`
			}
			if err := json.Unmarshal(fields, &f); err != nil {
				return nil, WrapEncodingError(variant, "malformed fields", err)
			}
			return NewStoredVersionedContractByName(f.Name, f.Version, f.EntryPoint, f.Args), nil

		case "Transfer":
			var f struct {
				Args *RuntimeArgs `json:"args"`
			}
			if err := json.Unmarshal(fields, &f); err != nil {
				return nil, WrapEncodingError(variant, "malformed fields", err)
			}
			return NewTransfer(f.Args), nil

		default:
			return nil, NewEncodingError(variant, "unknown executable item variant")
		}
	}

	return nil, NewEncodingError("item", "empty executable item")
}

type deployHeaderJSON struct {
	Account      string   `json:"account"`
	Timestamp    string   `json:"timestamp"`
	TTL          string   `json:"ttl"`
	GasPrice     uint64   `json:"gas_price"`
	BodyHash     string   `json:"body_hash"`
	Dependencies []string `json:"dependencies"`
	ChainName    string   `json:"chain_name"`
}

type deployJSON struct {
	Hash      string           `json:"hash"`
	Header    deployHeaderJSON `json:"header"`
	Payment   json.RawMessage  `json:"payment"`
	Session   json.RawMessage  `json:"session"`
	Approvals []DeployApproval `json:"approvals"`
}

// MarshalJSON renders the deploy in its submission envelope shape.
func (d *Deploy) MarshalJSON() ([]byte, error) {
	if d.Header == nil || d.Payment == nil || d.Session == nil {
		return nil, NewValidationError("deploy", "header, payment and session must all be set")
	}

	payment, err := marshalItem(d.Payment)
	if err != nil {
		return nil, fmt.Errorf("marshal payment failed: %w", err)
	}
	session, err := marshalItem(d.Session)
	if err != nil {
		return nil, fmt.Errorf("marshal session failed: %w", err)
	}

	dependencies := make([]string, 0, len(d.Header.Dependencies))
	for _, dep := range d.Header.Dependencies {
		dependencies = append(dependencies, utils.BytesToHex(dep[:]))
	}

	approvals := d.Approvals
	if approvals == nil {
		approvals = []DeployApproval{}
	}

	return json.Marshal(deployJSON{
		Hash: d.Hash,
		Header: deployHeaderJSON{
			Account:      utils.BytesToHex(d.Header.Account),
			Timestamp:    FormatTimestamp(d.Header.Timestamp),
			TTL:          FormatTTL(d.Header.TTL),
			GasPrice:     d.Header.GasPrice,
			BodyHash:     utils.BytesToHex(d.Header.BodyHash[:]),
			Dependencies: dependencies,
			ChainName:    d.Header.ChainName,
		},
		Payment:   payment,
		Session:   session,
		Approvals: approvals,
	})
}

// UnmarshalJSON parses the submission envelope back into a Deploy. Hashes
// are taken as-is; call ValidateHashes to check them.
func (d *Deploy) UnmarshalJSON(data []byte) error {
	var raw deployJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return WrapEncodingError("deploy", "malformed deploy object", err)
	}

	account, err := utils.HexToBytes(raw.Header.Account)
	if err != nil {
		return WrapEncodingError("account", "invalid account hex", err)
	}
	timestamp, err := ParseTimestamp(raw.Header.Timestamp)
	if err != nil {
		return err
	}
	ttl, err := ParseTTL(raw.Header.TTL)
	if err != nil {
		return err
	}
	bodyHash, err := utils.HexToHash32(raw.Header.BodyHash)
	if err != nil {
		return WrapEncodingError("body_hash", "invalid body hash", err)
	}
	dependencies := make([][32]byte, 0, len(raw.Header.Dependencies))
	for i, dep := range raw.Header.Dependencies {
		hash, err := utils.HexToHash32(dep)
		if err != nil {
			return WrapEncodingError("dependencies", fmt.Sprintf("dependency %d", i), err)
		}
		dependencies = append(dependencies, hash)
	}

	payment, err := parseItem(raw.Payment)
	if err != nil {
		return fmt.Errorf("parse payment failed: %w", err)
	}
	session, err := parseItem(raw.Session)
	if err != nil {
		return fmt.Errorf("parse session failed: %w", err)
	}

	d.Hash = raw.Hash
	d.Header = &DeployHeader{
		Account:      account,
		Timestamp:    timestamp,
		TTL:          ttl,
		GasPrice:     raw.Header.GasPrice,
		BodyHash:     bodyHash,
		Dependencies: dependencies,
		ChainName:    raw.Header.ChainName,
	}
	d.Payment = payment
	d.Session = session
	d.Approvals = raw.Approvals
	if d.Approvals == nil {
		d.Approvals = []DeployApproval{}
	}
	return nil
}
