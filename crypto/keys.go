package crypto

import (
	"crypto/ecdsa"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

const (
	compressedPubKeyLength   = 33
	uncompressedPubKeyLength = 65
)

// PublicKey is a parsed secp256k1 public key.
type PublicKey struct {
	*ecdsa.PublicKey
}

// ParsePublicKey accepts the 33 byte compressed and 65 byte uncompressed SEC1
// encodings. Anything that does not decode to a point on the curve is
// rejected with ErrInvalidPublicKey.
func ParsePublicKey(b []byte) (*PublicKey, error) {
	var (
		key *ecdsa.PublicKey
		err error
	)
	switch len(b) {
	case compressedPubKeyLength:
		key, err = crypto.DecompressPubkey(b)
	case uncompressedPubKeyLength:
		key, err = crypto.UnmarshalPubkey(b)
	default:
		return nil, fmt.Errorf("%w: unexpected length %d", ErrInvalidPublicKey, len(b))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &PublicKey{key}, nil
}

// Uncompressed returns the 65 byte 0x04 || X || Y encoding.
func (k *PublicKey) Uncompressed() []byte {
	return crypto.FromECDSAPub(k.PublicKey)
}

// EIP155Address returns the checksummed 0x-prefixed Ethereum address of the key.
func (k *PublicKey) EIP155Address() string {
	digest := Keccak256(k.Uncompressed()[1:])
	return "0x" + ChecksumCase(HexEncode(digest[HashLength-AddressBodyLength:]))
}
