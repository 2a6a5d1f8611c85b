package crypto

import (
	"bytes"
	"fmt"
	"strings"
)

const (
	// AddressBodyLength is the size of the hashed key material carried by
	// both address schemes.
	AddressBodyLength = 20

	LTOAddressVersion byte = 0x01
	LTOChecksumLength      = 4
	// LTOAddressLength is version(1) + network(1) + body(20) + checksum(4).
	LTOAddressLength = 2 + AddressBodyLength + LTOChecksumLength
)

// NetworkID selects the LTO network an address belongs to.
type NetworkID byte

const (
	LTOMainnet NetworkID = 'L'
	LTOTestnet NetworkID = 'T'
)

func (n NetworkID) Valid() bool {
	return n == LTOMainnet || n == LTOTestnet
}

func (n NetworkID) String() string {
	return string(rune(n))
}

// ParseNetworkID converts a single character selector such as "T" into a
// NetworkID.
func ParseNetworkID(s string) (NetworkID, error) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != 1 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNetwork, s)
	}
	n := NetworkID(trimmed[0])
	if !n.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNetwork, s)
	}
	return n, nil
}

// DeriveEIP155Address derives the checksummed Ethereum address for a base58
// encoded secp256k1 public key in compressed or uncompressed form.
func DeriveEIP155Address(pubKeyBase58 string) (string, error) {
	if pubKeyBase58 == "" {
		return "", fmt.Errorf("%w: public key", ErrEmptyInput)
	}
	raw, err := Base58Decode(pubKeyBase58)
	if err != nil {
		return "", err
	}
	key, err := ParsePublicKey(raw)
	if err != nil {
		return "", err
	}
	return key.EIP155Address(), nil
}

// DeriveLTOAddress derives the base58 LTO address of a base58 encoded public
// key on the given network.
func DeriveLTOAddress(network NetworkID, pubKeyBase58 string) (string, error) {
	if !network.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidNetwork, network.String())
	}
	if pubKeyBase58 == "" {
		return "", fmt.Errorf("%w: public key", ErrEmptyInput)
	}
	raw, err := Base58Decode(pubKeyBase58)
	if err != nil {
		return "", err
	}
	return Base58Encode(ltoAddressBytes(network, raw)), nil
}

func ltoAddressBytes(network NetworkID, pubKey []byte) []byte {
	out := make([]byte, 0, LTOAddressLength)
	out = append(out, LTOAddressVersion, byte(network))
	out = append(out, SecureHash(pubKey)[:AddressBodyLength]...)
	return append(out, SecureHash(out)[:LTOChecksumLength]...)
}

// ValidateLTOAddress decodes an LTO address and checks its length, version,
// network and checksum. It returns the network the address belongs to.
func ValidateLTOAddress(addr string) (NetworkID, error) {
	if addr == "" {
		return 0, fmt.Errorf("%w: address", ErrEmptyInput)
	}
	raw, err := Base58Decode(addr)
	if err != nil {
		return 0, err
	}
	if len(raw) != LTOAddressLength {
		return 0, fmt.Errorf("%w: length %d, want %d", ErrInvalidAddress, len(raw), LTOAddressLength)
	}
	if raw[0] != LTOAddressVersion {
		return 0, fmt.Errorf("%w: unsupported version %d", ErrInvalidAddress, raw[0])
	}
	network := NetworkID(raw[1])
	if !network.Valid() {
		return 0, fmt.Errorf("%w: %w %q", ErrInvalidAddress, ErrInvalidNetwork, network.String())
	}
	body := raw[:LTOAddressLength-LTOChecksumLength]
	if !bytes.Equal(SecureHash(body)[:LTOChecksumLength], raw[len(body):]) {
		return 0, fmt.Errorf("%w: checksum mismatch", ErrInvalidAddress)
	}
	return network, nil
}
