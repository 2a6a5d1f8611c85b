package crypto

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

const (
	// secp256k1 generator point, i.e. the public key of private key 1.
	genCompressedB58   = "jesTu2BpszP8DKSoi1R5G6ggjHrsrVnboLdx6V47vkoR"
	genUncompressedB58 = "PucSdUxwL4xHpPiAWbia7uCeAxyFeqQEUrwAmm9ypvGFMEVVbmU3qgBWDcZTosuNbjh8zXqL2sMXBabFzS1DF5x3"
	genEIP155          = "0x7E5F4552091A69125d5DfCb7b8C2659029395Bdf"

	// public key of private key 2.
	twoCompressedB58 = "pncSjsftdmspedXgmCkkHLRCeak12ex2WVrne2qdefSU"
	twoEIP155        = "0x2B5AD5c4795c026514f8317c7a215E218DcCD6cF"

	ltoPubKeyB58  = "GjSacB6a5DFNEHjDSmn724QsrRStKYzkahPH67wyrhAY"
	ltoTestnet    = "3MyuPwbiobZFnZzrtyY8pkaHoQHYmyQxxY1"
	ltoMainnet    = "3JmCa4jLVv7Yn2XkCnBUGsa7WNFVEMxAfWe"
	genLTOTestnet = "3MskqE3nhit189H4Cp9xNsEVwHQWoBDKXud"
	genLTOMainnet = "3Jf41MBQQ3SJ7bowWcoHpzEKeFNTFYTRGkU"
)

func TestDeriveEIP155Address(t *testing.T) {
	cases := []struct {
		name   string
		pubKey string
		want   string
	}{
		{name: "compressed", pubKey: genCompressedB58, want: genEIP155},
		{name: "uncompressed", pubKey: genUncompressedB58, want: genEIP155},
		{name: "second key", pubKey: twoCompressedB58, want: twoEIP155},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeriveEIP155Address(tc.pubKey)
			if err != nil {
				t.Fatalf("derive: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected address: got %s want %s", got, tc.want)
			}
		})
	}
}

func TestDeriveEIP155AddressMatchesGoEthereum(t *testing.T) {
	for i := int64(1); i <= 16; i++ {
		seed := new(big.Int).Mul(big.NewInt(i), big.NewInt(0x1f2e3d4c5b6a7988))
		priv, err := ethcrypto.ToECDSA(ethcrypto.Keccak256(seed.Bytes()))
		if err != nil {
			t.Fatalf("private key %d: %v", i, err)
		}
		want := ethcrypto.PubkeyToAddress(priv.PublicKey).Hex()

		compressed := Base58Encode(ethcrypto.CompressPubkey(&priv.PublicKey))
		got, err := DeriveEIP155Address(compressed)
		if err != nil {
			t.Fatalf("derive %d: %v", i, err)
		}
		if got != want {
			t.Fatalf("key %d: got %s want %s", i, got, want)
		}

		uncompressed := Base58Encode(ethcrypto.FromECDSAPub(&priv.PublicKey))
		again, err := DeriveEIP155Address(uncompressed)
		if err != nil {
			t.Fatalf("derive uncompressed %d: %v", i, err)
		}
		if again != got {
			t.Fatalf("key %d: compressed and uncompressed forms disagree: %s vs %s", i, got, again)
		}
	}
}

func TestDeriveEIP155AddressErrors(t *testing.T) {
	cases := []struct {
		name   string
		pubKey string
		want   error
	}{
		{name: "empty", pubKey: "", want: ErrEmptyInput},
		{name: "bad base58", pubKey: "0OIl", want: ErrDecode},
		{name: "wrong length", pubKey: "1Bhh3pU9gLXZiNDL6PEZuEP5ri", want: ErrInvalidPublicKey},
		{name: "x not on curve", pubKey: "bTdjzaWCb6UY9AZqTMMbPSc3VzHeVR9By6ueiqrY2uVe", want: ErrInvalidPublicKey},
		{name: "bad prefix", pubKey: "2dLpaPPSdG8bRvZo4PXwxqm6FUmnr67ztFVVvgFLRUcYF", want: ErrInvalidPublicKey},
		{name: "point off curve", pubKey: "PucSdUxwL4xHpPiAWbia7uCeAxyFeqQEUrwAmm9ypvGFMEVVbmU3qgBWDcZTosuNbjh8zXqL2sMXBabFzS1DF5x4", want: ErrInvalidPublicKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			addr, err := DeriveEIP155Address(tc.pubKey)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v (address %q)", tc.want, err, addr)
			}
			if addr != "" {
				t.Fatalf("expected empty address on error, got %q", addr)
			}
		})
	}
}

func TestDeriveEIP155AddressDecodeErrorNamesEncoding(t *testing.T) {
	_, err := DeriveEIP155Address("abc0")
	if err == nil || !strings.Contains(err.Error(), "base58") {
		t.Fatalf("expected base58 decode error, got %v", err)
	}
}

func TestDeriveLTOAddress(t *testing.T) {
	cases := []struct {
		name    string
		network NetworkID
		pubKey  string
		want    string
	}{
		{name: "testnet vector", network: LTOTestnet, pubKey: ltoPubKeyB58, want: ltoTestnet},
		{name: "mainnet vector", network: LTOMainnet, pubKey: ltoPubKeyB58, want: ltoMainnet},
		{name: "secp256k1 key testnet", network: LTOTestnet, pubKey: genCompressedB58, want: genLTOTestnet},
		{name: "secp256k1 key mainnet", network: LTOMainnet, pubKey: genCompressedB58, want: genLTOMainnet},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DeriveLTOAddress(tc.network, tc.pubKey)
			if err != nil {
				t.Fatalf("derive: %v", err)
			}
			if got != tc.want {
				t.Fatalf("unexpected address: got %s want %s", got, tc.want)
			}
			raw, err := Base58Decode(got)
			if err != nil {
				t.Fatalf("decode derived address: %v", err)
			}
			if len(raw) != LTOAddressLength {
				t.Fatalf("unexpected payload length %d", len(raw))
			}
			if raw[0] != LTOAddressVersion || NetworkID(raw[1]) != tc.network {
				t.Fatalf("unexpected header %x", raw[:2])
			}
		})
	}
}

func TestDeriveLTOAddressErrors(t *testing.T) {
	if _, err := DeriveLTOAddress('X', ltoPubKeyB58); !errors.Is(err, ErrInvalidNetwork) {
		t.Fatalf("expected ErrInvalidNetwork, got %v", err)
	}
	if _, err := DeriveLTOAddress('l', ltoPubKeyB58); !errors.Is(err, ErrInvalidNetwork) {
		t.Fatalf("expected ErrInvalidNetwork for lowercase selector, got %v", err)
	}
	// The network check runs before the key is looked at.
	if _, err := DeriveLTOAddress(0, "0OIl"); !errors.Is(err, ErrInvalidNetwork) {
		t.Fatalf("expected ErrInvalidNetwork before decode, got %v", err)
	}
	if _, err := DeriveLTOAddress(LTOTestnet, "0OIl"); !errors.Is(err, ErrDecode) {
		t.Fatalf("expected ErrDecode, got %v", err)
	}
	if _, err := DeriveLTOAddress(LTOTestnet, ""); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDerivationIsDeterministic(t *testing.T) {
	first, err := DeriveLTOAddress(LTOTestnet, ltoPubKeyB58)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	eth, err := DeriveEIP155Address(genCompressedB58)
	if err != nil {
		t.Fatalf("derive: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, _ := DeriveLTOAddress(LTOTestnet, ltoPubKeyB58)
		if again != first {
			t.Fatalf("lto derivation changed between calls: %s vs %s", first, again)
		}
		ethAgain, _ := DeriveEIP155Address(genCompressedB58)
		if ethAgain != eth {
			t.Fatalf("eip155 derivation changed between calls: %s vs %s", eth, ethAgain)
		}
	}
}

func TestParseNetworkID(t *testing.T) {
	for _, in := range []string{"L", "T", " T "} {
		n, err := ParseNetworkID(in)
		if err != nil {
			t.Fatalf("parse %q: %v", in, err)
		}
		if n.String() != strings.TrimSpace(in) {
			t.Fatalf("unexpected network %s for %q", n, in)
		}
	}
	for _, in := range []string{"", "X", "LT", "t"} {
		if _, err := ParseNetworkID(in); !errors.Is(err, ErrInvalidNetwork) {
			t.Fatalf("expected ErrInvalidNetwork for %q, got %v", in, err)
		}
	}
}

func TestValidateLTOAddress(t *testing.T) {
	network, err := ValidateLTOAddress(ltoTestnet)
	if err != nil {
		t.Fatalf("validate testnet: %v", err)
	}
	if network != LTOTestnet {
		t.Fatalf("unexpected network %s", network)
	}
	network, err = ValidateLTOAddress(ltoMainnet)
	if err != nil || network != LTOMainnet {
		t.Fatalf("validate mainnet: network=%s err=%v", network, err)
	}

	cases := []struct {
		name string
		addr string
		want error
	}{
		{name: "empty", addr: "", want: ErrEmptyInput},
		{name: "bad base58", addr: "3MyuPwbiobZFnZzrtyY8pkaHoQHYmyQxxY0", want: ErrDecode},
		{name: "tampered checksum", addr: "3MyuPwbiobZFnZzrtyY8pkaHoQHYmyQxxY2", want: ErrInvalidAddress},
		{name: "too short", addr: "1Bhh3pU9gLXZiNDL6PEZuEP5ri", want: ErrInvalidAddress},
		{name: "unknown network", addr: "3PbFot2uxSH7HqjRF5DU6h5NwvJaYph6vfv", want: ErrInvalidNetwork},
		{name: "unknown version", addr: "58zRp1Q2ZMjt5vxZ5EwQQtfyCXRWG495vFd", want: ErrInvalidAddress},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ValidateLTOAddress(tc.addr); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
