package capability

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"
)

// CanonicalLength is the size of every canonical address produced by EmptyAPI.
const CanonicalLength = 54

const minHumanLength = 3

var (
	ErrInvalidAddress = errors.New("capability: invalid address")
	ErrTooShort       = errors.New("capability: human address too short")
	ErrTooLong        = errors.New("capability: human address too long")
	ErrBadLength      = errors.New("capability: canonical address length not correct")
	ErrInvalidUTF8    = errors.New("capability: canonical address is not valid utf-8")

	ErrVerificationUnknown  = errors.New("capability: verification unavailable")
	ErrRecoverPubkeyUnknown = errors.New("capability: public key recovery unavailable")
)

// API is the host capability surface a contract invocation expects.
type API interface {
	AddrValidate(human string) (string, error)
	AddrCanonicalize(human string) ([]byte, error)
	AddrHumanize(canonical []byte) (string, error)
	Secp256k1Verify(messageHash, signature, publicKey []byte) (bool, error)
	Secp256k1RecoverPubkey(messageHash, signature []byte, recoveryParam uint8) ([]byte, error)
	Ed25519Verify(message, signature, publicKey []byte) (bool, error)
	Ed25519BatchVerify(messages, signatures, publicKeys [][]byte) (bool, error)
	Debug(message string)
}

// EmptyAPI satisfies API for sandboxed ownables that never rely on real
// address formats or signature checks. Its results are placeholders:
// canonical addresses are the zero-padded human bytes, secp256k1 operations
// always fail and ed25519 verification always succeeds.
type EmptyAPI struct {
	canonicalLength int
	logger          *slog.Logger
}

// NewEmptyAPI returns the stub API. Debug messages go to logger, or to
// slog.Default() when logger is nil.
func NewEmptyAPI(logger *slog.Logger) EmptyAPI {
	return EmptyAPI{canonicalLength: CanonicalLength, logger: logger}
}

func (a EmptyAPI) length() int {
	if a.canonicalLength == 0 {
		return CanonicalLength
	}
	return a.canonicalLength
}

func (a EmptyAPI) AddrValidate(human string) (string, error) {
	if _, err := a.AddrCanonicalize(human); err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	return human, nil
}

// AddrCanonicalize right-pads the human address with zero bytes. Only the
// length is checked.
func (a EmptyAPI) AddrCanonicalize(human string) ([]byte, error) {
	if len(human) < minHumanLength {
		return nil, ErrTooShort
	}
	if len(human) > a.length() {
		return nil, ErrTooLong
	}
	out := make([]byte, a.length())
	copy(out, human)
	return out, nil
}

// AddrHumanize strips every zero byte, padding or not, and decodes the rest
// as UTF-8.
func (a EmptyAPI) AddrHumanize(canonical []byte) (string, error) {
	if len(canonical) != a.length() {
		return "", fmt.Errorf("%w: got %d, want %d", ErrBadLength, len(canonical), a.length())
	}
	trimmed := make([]byte, 0, len(canonical))
	for _, b := range canonical {
		if b != 0x00 {
			trimmed = append(trimmed, b)
		}
	}
	if !utf8.Valid(trimmed) {
		return "", ErrInvalidUTF8
	}
	return string(trimmed), nil
}

// Secp256k1Verify is not implemented and never reports success.
func (a EmptyAPI) Secp256k1Verify(_, _, _ []byte) (bool, error) {
	return false, ErrVerificationUnknown
}

// Secp256k1RecoverPubkey is not implemented and always fails.
func (a EmptyAPI) Secp256k1RecoverPubkey(_, _ []byte, _ uint8) ([]byte, error) {
	return nil, ErrRecoverPubkeyUnknown
}

// Ed25519Verify is a placeholder that accepts every signature. It performs no
// verification.
func (a EmptyAPI) Ed25519Verify(_, _, _ []byte) (bool, error) {
	return true, nil
}

// Ed25519BatchVerify is a placeholder that accepts every batch. It performs no
// verification.
func (a EmptyAPI) Ed25519BatchVerify(_, _, _ [][]byte) (bool, error) {
	return true, nil
}

func (a EmptyAPI) Debug(message string) {
	logger := a.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info(message, slog.String("component", "contract"))
}
