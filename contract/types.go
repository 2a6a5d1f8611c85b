package contract

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"

	"github.com/holiman/uint256"
)

var (
	ErrUint128Overflow = errors.New("contract: value exceeds 128 bits")
	ErrInvalidCAIP2    = errors.New("contract: invalid CAIP-2 chain id")
)

// Uint128 is an unsigned 128-bit integer, encoded in JSON as a decimal string.
type Uint128 struct {
	v uint256.Int
}

func NewUint128(v uint64) Uint128 {
	var u Uint128
	u.v.SetUint64(v)
	return u
}

func ParseUint128(s string) (Uint128, error) {
	var u Uint128
	if err := u.v.SetFromDecimal(s); err != nil {
		return Uint128{}, fmt.Errorf("parse uint128 %q: %w", s, err)
	}
	if u.v.BitLen() > 128 {
		return Uint128{}, fmt.Errorf("%w: %s", ErrUint128Overflow, s)
	}
	return u, nil
}

func (u Uint128) String() string {
	return u.v.Dec()
}

func (u Uint128) Equal(other Uint128) bool {
	return u.v.Eq(&other.v)
}

func (u Uint128) MarshalJSON() ([]byte, error) {
	return json.Marshal(u.v.Dec())
}

func (u *Uint128) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("uint128 must be a decimal string: %w", err)
	}
	parsed, err := ParseUint128(s)
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

var caip2Pattern = regexp.MustCompile(`^([-a-z0-9]{3,8}):([-_a-zA-Z0-9]{1,32})$`)

// ParseCAIP2 splits a CAIP-2 chain id such as "eip155:1" into namespace and
// reference.
func ParseCAIP2(chainID string) (namespace, reference string, err error) {
	m := caip2Pattern.FindStringSubmatch(chainID)
	if m == nil {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidCAIP2, chainID)
	}
	return m[1], m[2], nil
}

// Metadata follows the cw721 on-chain metadata layout.
type Metadata struct {
	Image           *string `json:"image"`
	ImageData       *string `json:"image_data"`
	ExternalURL     *string `json:"external_url"`
	Description     *string `json:"description"`
	Name            *string `json:"name"`
	BackgroundColor *string `json:"background_color"`
	AnimationURL    *string `json:"animation_url"`
	YoutubeURL      *string `json:"youtube_url"`
}

// ExternalEventMsg carries an event observed on another chain. Network is a
// CAIP-2 chain id, e.g. "eip155:1".
type ExternalEventMsg struct {
	Network    *string           `json:"network"`
	EventType  string            `json:"event_type"`
	Attributes map[string]string `json:"attributes"`
}

type OwnableInfo struct {
	Owner       string  `json:"owner"`
	Issuer      string  `json:"issuer"`
	OwnableType *string `json:"ownable_type"`
}

// NFT links an ownable to a token on an external chain.
type NFT struct {
	Network     string  `json:"network"`
	ID          Uint128 `json:"id"`
	Address     string  `json:"address"`
	LockService *string `json:"lock_service"`
}

type InfoResponse struct {
	Owner       string  `json:"owner"`
	Issuer      string  `json:"issuer"`
	NFT         *NFT    `json:"nft"`
	OwnableType *string `json:"ownable_type"`
}
