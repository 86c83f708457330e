package ethereum

import (
	"encoding/hex"
	"strings"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// signPersonal produces a wallet-style r||s||v signature for message.
func signPersonal(t *testing.T, priv *secp256k1.PrivateKey, message string) string {
	t.Helper()
	compact := secpecdsa.SignCompact(priv, PersonalSignDigest(message), false)

	sig := make([]byte, 65)
	copy(sig, compact[1:])
	sig[64] = compact[0]
	return "0x" + hex.EncodeToString(sig)
}

func newKey(t *testing.T) (*secp256k1.PrivateKey, string) {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return priv, PubkeyToAddress(priv.PubKey())
}

func TestVerifyPersonalSign_Valid(t *testing.T) {
	priv, addr := newKey(t)
	msg := "talent-board login\nnonce: abc123"
	sig := signPersonal(t, priv, msg)

	if err := VerifyPersonalSign(addr, msg, sig); err != nil {
		t.Fatalf("expected valid signature, got %v", err)
	}
}

func TestVerifyPersonalSign_CaseInsensitiveAddress(t *testing.T) {
	priv, addr := newKey(t)
	msg := "case test"
	sig := signPersonal(t, priv, msg)

	upper := "0x" + strings.ToUpper(addr[2:])
	if err := VerifyPersonalSign(upper, msg, sig); err != nil {
		t.Fatalf("expected uppercase address to verify, got %v", err)
	}
}

func TestVerifyPersonalSign_WrongSigner(t *testing.T) {
	priv, _ := newKey(t)
	_, otherAddr := newKey(t)
	msg := "who signed this"
	sig := signPersonal(t, priv, msg)

	if err := VerifyPersonalSign(otherAddr, msg, sig); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyPersonalSign_TamperedMessage(t *testing.T) {
	priv, addr := newKey(t)
	sig := signPersonal(t, priv, "original message")

	if err := VerifyPersonalSign(addr, "tampered message", sig); err != ErrInvalidSignature {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestVerifyPersonalSign_MalformedSignature(t *testing.T) {
	_, addr := newKey(t)

	for _, sig := range []string{"", "0x00", "not-hex", "0x" + strings.Repeat("ff", 64)} {
		if err := VerifyPersonalSign(addr, "msg", sig); err == nil {
			t.Fatalf("expected error for signature %q", sig)
		}
	}
}

func TestRecoverAddress_VZeroOne(t *testing.T) {
	priv, addr := newKey(t)
	msg := "v normalization"
	sigHex := signPersonal(t, priv, msg)

	sig, err := decodeHex(sigHex)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Some wallets emit v as 0/1 instead of 27/28.
	sig[64] -= 27

	recovered, err := RecoverAddress(msg, sig)
	if err != nil {
		t.Fatalf("recover: %v", err)
	}
	if !strings.EqualFold(recovered, addr) {
		t.Fatalf("recovered %s, want %s", recovered, addr)
	}
}

func TestNormalizeAddress(t *testing.T) {
	got, err := NormalizeAddress("0xAbCdEf0123456789abcdef0123456789ABCDEF01")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got != "0xabcdef0123456789abcdef0123456789abcdef01" {
		t.Fatalf("unexpected normalization: %s", got)
	}

	for _, bad := range []string{"", "abcdef", "0x1234", "0x" + strings.Repeat("g", 40)} {
		if _, err := NormalizeAddress(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
