package ethereum

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"golang.org/x/crypto/sha3"
)

var (
	ErrInvalidAddress   = errors.New("invalid address")
	ErrInvalidSignature = errors.New("invalid signature")
)

const (
	addressHexLen   = 40
	signatureLen    = 65
	personalMsgTmpl = "\x19Ethereum Signed Message:\n%d%s"
)

// NormalizeAddress validates a hex-encoded address and returns its
// lowercase canonical form, which is what the store keys on.
func NormalizeAddress(addr string) (string, error) {
	addr = strings.TrimSpace(addr)
	if !strings.HasPrefix(addr, "0x") && !strings.HasPrefix(addr, "0X") {
		return "", ErrInvalidAddress
	}
	hexPart := addr[2:]
	if len(hexPart) != addressHexLen {
		return "", ErrInvalidAddress
	}
	if _, err := hex.DecodeString(hexPart); err != nil {
		return "", ErrInvalidAddress
	}
	return "0x" + strings.ToLower(hexPart), nil
}

// PersonalSignDigest hashes a message the way wallets do for
// personal_sign: keccak256 over the EIP-191 prefixed message.
func PersonalSignDigest(message string) []byte {
	h := sha3.NewLegacyKeccak256()
	fmt.Fprintf(h, personalMsgTmpl, len(message), message)
	return h.Sum(nil)
}

// RecoverAddress recovers the signer address from a personal_sign
// signature (r || s || v, 65 bytes, v in {0,1,27,28}).
func RecoverAddress(message string, signature []byte) (string, error) {
	if len(signature) != signatureLen {
		return "", ErrInvalidSignature
	}

	v := signature[signatureLen-1]
	if v < 27 {
		v += 27
	}
	if v != 27 && v != 28 {
		return "", ErrInvalidSignature
	}

	// RecoverCompact wants the recovery header first; wallets put it last.
	compact := make([]byte, signatureLen)
	compact[0] = v
	copy(compact[1:], signature[:signatureLen-1])

	pub, _, err := secpecdsa.RecoverCompact(compact, PersonalSignDigest(message))
	if err != nil {
		return "", ErrInvalidSignature
	}

	return PubkeyToAddress(pub), nil
}

// VerifyPersonalSign checks that sigHex over message was produced by the
// key controlling address. Comparison is case-insensitive.
func VerifyPersonalSign(address, message, sigHex string) error {
	normalized, err := NormalizeAddress(address)
	if err != nil {
		return ErrInvalidSignature
	}

	sig, err := decodeHex(sigHex)
	if err != nil {
		return ErrInvalidSignature
	}

	recovered, err := RecoverAddress(message, sig)
	if err != nil {
		return err
	}
	if !strings.EqualFold(recovered, normalized) {
		return ErrInvalidSignature
	}
	return nil
}

// PubkeyToAddress derives the address: last 20 bytes of the keccak256
// hash of the uncompressed public key without its 0x04 prefix.
func PubkeyToAddress(pub *secp256k1.PublicKey) string {
	h := sha3.NewLegacyKeccak256()
	h.Write(pub.SerializeUncompressed()[1:])
	sum := h.Sum(nil)
	return "0x" + hex.EncodeToString(sum[12:])
}

func decodeHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	return hex.DecodeString(s)
}
