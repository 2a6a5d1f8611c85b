package contract

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

// Timestamp is a point in time in nanoseconds since the Unix epoch. It is
// encoded in JSON as a decimal string.
type Timestamp uint64

var maxTimestampTime = time.Unix(0, math.MaxInt64)

// TimestampFromTime converts t to nanoseconds since the Unix epoch. Times
// before the epoch map to 0 and times after 2262-04-11 clamp to the largest
// value time.Time can round-trip.
func TimestampFromTime(t time.Time) Timestamp {
	if t.IsZero() || t.Before(time.Unix(0, 0)) {
		return 0
	}
	if t.After(maxTimestampTime) {
		return Timestamp(math.MaxInt64)
	}
	return Timestamp(t.UnixNano())
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts)).UTC()
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(strconv.FormatUint(uint64(ts), 10))
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	*ts = Timestamp(v)
	return nil
}

type BlockInfo struct {
	Height  uint64    `json:"height"`
	Time    Timestamp `json:"time"`
	ChainID string    `json:"chain_id"`
}

type ContractInfo struct {
	Address string `json:"address"`
}

type TransactionInfo struct {
	Index uint32 `json:"index"`
}

// Env is the execution environment handed to an ownable. Sandboxed ownables
// have no real block, so height and contract address are always empty.
type Env struct {
	Block       BlockInfo        `json:"block"`
	Contract    ContractInfo     `json:"contract"`
	Transaction *TransactionInfo `json:"transaction"`
}

func CreateEnv() Env {
	return CreateOwnableEnv("", nil)
}

// CreateOwnableEnv builds an Env for chainID. A nil time means the epoch.
func CreateOwnableEnv(chainID string, t *time.Time) Env {
	var ts Timestamp
	if t != nil {
		ts = TimestampFromTime(*t)
	}
	return Env{
		Block: BlockInfo{
			Height:  0,
			Time:    ts,
			ChainID: chainID,
		},
		Contract: ContractInfo{Address: ""},
	}
}
