package crypto

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcutil/base58"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
)

// HashLength is the output size of every digest in the pipeline.
const HashLength = 32

const base58Alphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// Keccak256 returns the legacy Keccak-256 digest used by Ethereum.
func Keccak256(data ...[]byte) []byte {
	return crypto.Keccak256(data...)
}

// Blake2b256 returns the BLAKE2b digest truncated to 32 bytes of output.
func Blake2b256(data []byte) []byte {
	sum := blake2b.Sum256(data)
	return sum[:]
}

func SHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// SecureHash is the LTO address hash: SHA-256 over BLAKE2b-256.
func SecureHash(data []byte) []byte {
	return SHA256(Blake2b256(data))
}

// HexEncode returns lowercase hex without a prefix.
func HexEncode(b []byte) string {
	return hex.EncodeToString(b)
}

// HexDecode decodes hex input leniently: surrounding whitespace and any
// leading "0x" prefixes are dropped, and odd-length input is left-padded with
// a zero nibble.
func HexDecode(s string) ([]byte, error) {
	trimmed := strings.TrimSpace(s)
	for strings.HasPrefix(trimmed, "0x") {
		trimmed = trimmed[2:]
	}
	if len(trimmed)%2 == 1 {
		trimmed = "0" + trimmed
	}
	out, err := hex.DecodeString(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: hex: %v", ErrDecode, err)
	}
	return out, nil
}

// Base58Encode encodes b with the Bitcoin alphabet.
func Base58Encode(b []byte) string {
	return base58.Encode(b)
}

// Base58Decode decodes s with the Bitcoin alphabet. The empty string decodes
// to an empty slice.
func Base58Decode(s string) ([]byte, error) {
	for i, r := range s {
		if !strings.ContainsRune(base58Alphabet, r) {
			return nil, fmt.Errorf("%w: base58: invalid character %q at offset %d", ErrDecode, r, i)
		}
	}
	out := base58.Decode(s)
	if len(out) == 0 && s != "" {
		return nil, fmt.Errorf("%w: base58: malformed input", ErrDecode)
	}
	return out, nil
}
