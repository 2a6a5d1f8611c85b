package contract

import (
	"fmt"

	"ownable/crypto"
)

// RandomColor returns a "#RRGGBB" color derived from a hex encoded hash.
func RandomColor(hash string) string {
	return RGBHex(DeriveRGBValues(hash))
}

// DeriveRGBValues takes the last three bytes of a hex hash, last byte first.
// The hash may carry a 0x prefix and have odd length. Undecodable input and
// missing bytes yield zero components.
func DeriveRGBValues(hash string) (r, g, b uint8) {
	raw, err := crypto.HexDecode(hash)
	if err != nil {
		return 0, 0, 0
	}
	at := func(i int) uint8 {
		if i < len(raw) {
			return raw[len(raw)-1-i]
		}
		return 0
	}
	return at(0), at(1), at(2)
}

func RGBHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02X%02X%02X", r, g, b)
}
