package types

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
	"time"

	"github.com/SamDreamsMaker/com.caspernetwork.sdk/utils"
)

const testAccountHex = "01" + "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"

func testPayment(t *testing.T) *ModuleBytes {
	t.Helper()
	amount, err := NewCLValueU512FromString("100000000")
	if err != nil {
		t.Fatalf("encode payment amount failed: %v", err)
	}
	return NewModuleBytes(nil, NewRuntimeArgs().Insert("amount", amount))
}

func testSession(t *testing.T) *Transfer {
	t.Helper()
	amount, err := NewCLValueU512FromString("2500000000")
	if err != nil {
		t.Fatalf("encode transfer amount failed: %v", err)
	}
	return NewTransfer(NewRuntimeArgs().Insert("amount", amount))
}

func testParams() DeployParams {
	return DeployParams{
		Account:         testAccountHex,
		ChainName:       "casper-test",
		GasPrice:        1,
		TTLMillis:       30 * 60 * 1000,
		TimestampMillis: 1_700_000_000_000,
	}
}

func TestMakeDeployValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*DeployParams)
		noPayment bool
		noSession bool
		wantField string
	}{
		{name: "missing account", mutate: func(p *DeployParams) { p.Account = "" }, wantField: "account"},
		{name: "missing chain name", mutate: func(p *DeployParams) { p.ChainName = "" }, wantField: "chain_name"},
		{name: "missing payment", noPayment: true, wantField: "payment"},
		{name: "missing session", noSession: true, wantField: "session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := testParams()
			if tt.mutate != nil {
				tt.mutate(&params)
			}
			var payment, session ExecutableDeployItem
			if !tt.noPayment {
				payment = testPayment(t)
			}
			if !tt.noSession {
				session = testSession(t)
			}

			_, err := MakeDeploy(params, payment, session)
			if err == nil {
				t.Fatal("MakeDeploy() succeeded, want validation error")
			}
			v, ok := IsValidationError(err)
			if !ok {
				t.Fatalf("error = %v, want ValidationError", err)
			}
			if v.Field != tt.wantField {
				t.Errorf("error names field %q, want %q", v.Field, tt.wantField)
			}
		})
	}
}

func TestMakeDeployRejectsBadHex(t *testing.T) {
	params := testParams()
	params.Account = "01zz"
	if _, err := MakeDeploy(params, testPayment(t), testSession(t)); err == nil {
		t.Error("invalid account hex accepted")
	}

	params = testParams()
	params.Dependencies = []string{"abcd"}
	if _, err := MakeDeploy(params, testPayment(t), testSession(t)); err == nil {
		t.Error("short dependency hash accepted")
	}
}

func TestMakeDeployDeterministicWithPinnedTimestamp(t *testing.T) {
	first, err := MakeDeploy(testParams(), testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}
	second, err := MakeDeploy(testParams(), testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}

	if first.Hash != second.Hash {
		t.Errorf("deploy hash not reproducible: %s vs %s", first.Hash, second.Hash)
	}
	if first.Header.BodyHash != second.Header.BodyHash {
		t.Error("body hash not reproducible")
	}
}

func TestMakeDeployHashSensitivity(t *testing.T) {
	base, err := MakeDeploy(testParams(), testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}

	// any header field change must change the deploy hash
	mutations := []func(*DeployParams){
		func(p *DeployParams) { p.GasPrice++ },
		func(p *DeployParams) { p.TimestampMillis++ },
		func(p *DeployParams) { p.TTLMillis += 1000 },
		func(p *DeployParams) { p.ChainName = "casper" },
	}
	for i, mutate := range mutations {
		params := testParams()
		mutate(&params)
		changed, err := MakeDeploy(params, testPayment(t), testSession(t))
		if err != nil {
			t.Fatalf("MakeDeploy() failed: %v", err)
		}
		if changed.Hash == base.Hash {
			t.Errorf("mutation %d did not change the deploy hash", i)
		}
	}

	// any argument change must change the body hash
	amount, err := NewCLValueU512FromString("2500000001")
	if err != nil {
		t.Fatalf("encode amount failed: %v", err)
	}
	session := NewTransfer(NewRuntimeArgs().Insert("amount", amount))
	changed, err := MakeDeploy(testParams(), testPayment(t), session)
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}
	if changed.Header.BodyHash == base.Header.BodyHash {
		t.Error("argument change did not change the body hash")
	}
	if changed.Hash == base.Hash {
		t.Error("argument change did not propagate to the deploy hash")
	}
}

func TestMakeDeployBodyHashInvariant(t *testing.T) {
	payment := testPayment(t)
	session := testSession(t)
	d, err := MakeDeploy(testParams(), payment, session)
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}

	body := append(payment.Bytes(), session.Bytes()...)
	want := utils.Hash256(body)
	if d.Header.BodyHash != want {
		t.Error("body hash is not hash256(payment ++ session)")
	}

	headerHash := utils.Hash256(d.Header.Bytes())
	if d.Hash != utils.BytesToHex(headerHash[:]) {
		t.Error("deploy hash is not hash256(header)")
	}
}

func TestDeployHeaderBytesLayout(t *testing.T) {
	account, err := utils.HexToBytes(testAccountHex)
	if err != nil {
		t.Fatalf("decode account failed: %v", err)
	}
	var bodyHash [32]byte
	for i := range bodyHash {
		bodyHash[i] = byte(i)
	}
	var dep [32]byte
	dep[0] = 0xff

	header := &DeployHeader{
		Account:      account,
		Timestamp:    1_700_000_000_000,
		TTL:          1_800_000,
		GasPrice:     1,
		BodyHash:     bodyHash,
		Dependencies: [][32]byte{dep},
		ChainName:    "casper-test",
	}

	got := header.Bytes()

	// account bytes first, no length prefix
	if !bytes.Equal(got[:33], account) {
		t.Error("header does not start with raw account bytes")
	}
	// then timestamp, ttl, gas price as u64 LE
	if binary.LittleEndian.Uint64(got[33:41]) != 1_700_000_000_000 {
		t.Error("timestamp misplaced or not little-endian")
	}
	if binary.LittleEndian.Uint64(got[41:49]) != 1_800_000 {
		t.Error("ttl misplaced or not little-endian")
	}
	if binary.LittleEndian.Uint64(got[49:57]) != 1 {
		t.Error("gas price misplaced or not little-endian")
	}
	// raw body hash, no length prefix
	if !bytes.Equal(got[57:89], bodyHash[:]) {
		t.Error("body hash misplaced")
	}
	// dependency count then raw dependency hashes
	if binary.LittleEndian.Uint32(got[89:93]) != 1 {
		t.Error("dependency count misplaced")
	}
	if !bytes.Equal(got[93:125], dep[:]) {
		t.Error("dependency hash misplaced")
	}
	// length-prefixed chain name last
	if binary.LittleEndian.Uint32(got[125:129]) != uint32(len("casper-test")) {
		t.Error("chain name length misplaced")
	}
	if string(got[129:]) != "casper-test" {
		t.Error("chain name misplaced")
	}
}

func TestMakeDeployDefaultTimestampIsBackdated(t *testing.T) {
	params := testParams()
	params.TimestampMillis = 0

	before := uint64(time.Now().UnixMilli())
	d, err := MakeDeploy(params, testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}
	after := uint64(time.Now().UnixMilli())

	// the safety margin puts timestamp+30s inside the [before, after] window
	if d.Header.Timestamp+30_000 < before || d.Header.Timestamp+30_000 > after {
		t.Errorf("timestamp %d not backdated 30s from now", d.Header.Timestamp)
	}
}

func TestMakeDeployDefaults(t *testing.T) {
	params := testParams()
	params.TTLMillis = 0
	params.GasPrice = 0

	d, err := MakeDeploy(params, testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}
	if d.Header.TTL != DefaultTTLMillis {
		t.Errorf("TTL = %d, want default %d", d.Header.TTL, DefaultTTLMillis)
	}
	if d.Header.GasPrice != 1 {
		t.Errorf("GasPrice = %d, want 1", d.Header.GasPrice)
	}
}

func TestValidateHashes(t *testing.T) {
	d, err := MakeDeploy(testParams(), testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}
	if err := d.ValidateHashes(); err != nil {
		t.Errorf("ValidateHashes() on a fresh deploy failed: %v", err)
	}

	// header mutation breaks the deploy hash
	d.Header.GasPrice++
	if err := d.ValidateHashes(); err == nil {
		t.Error("ValidateHashes() accepted mutated header")
	}
	d.Header.GasPrice--

	// session swap breaks the body hash
	amount, _ := NewCLValueU512FromString("1")
	d.Session = NewTransfer(NewRuntimeArgs().Insert("amount", amount))
	if err := d.ValidateHashes(); err == nil {
		t.Error("ValidateHashes() accepted swapped session")
	}
}

func TestDeployHashIsHexString(t *testing.T) {
	d, err := MakeDeploy(testParams(), testPayment(t), testSession(t))
	if err != nil {
		t.Fatalf("MakeDeploy() failed: %v", err)
	}
	if len(d.Hash) != 64 {
		t.Errorf("deploy hash length = %d, want 64 hex characters", len(d.Hash))
	}
	if strings.ToLower(d.Hash) != d.Hash {
		t.Error("deploy hash is not lowercase hex")
	}
	if !utils.IsHex(d.Hash) {
		t.Error("deploy hash is not hex")
	}
	if len(d.Approvals) != 0 {
		t.Errorf("fresh deploy has %d approvals, want 0", len(d.Approvals))
	}
}
