package storage

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"lukechampine.com/blake3"
)

// ErrMalformedDump is returned when a dump's wire form cannot be decoded.
var ErrMalformedDump = errors.New("storage: malformed state dump")

// Entry is a single key-value pair of a dump.
type Entry struct {
	Key   []byte
	Value []byte
}

// Dump is the portable export of a whole Store, exchanged with the host
// before and after each invocation.
type Dump struct {
	Entries []Entry
}

// Export collects every entry of store in ascending key order.
func Export(store Store) Dump {
	entries := make([]Entry, 0)
	store.Range(nil, nil, Ascending, func(key, value []byte) bool {
		entries = append(entries, Entry{Key: key, Value: value})
		return true
	})
	return Dump{Entries: entries}
}

// Load materialises dump into a fresh store. Entries are applied in dump
// order, so a later duplicate key overwrites an earlier one.
func Load(dump Dump) *MemoryStore {
	store := NewMemoryStore()
	for _, entry := range dump.Entries {
		store.Set(entry.Key, entry.Value)
	}
	return store
}

// Canonicalize returns the dump Export(Load(dump)) would produce: sorted by
// key with duplicates resolved last-write-wins.
func Canonicalize(dump Dump) Dump {
	latest := make(map[string]int, len(dump.Entries))
	for i, entry := range dump.Entries {
		latest[string(entry.Key)] = i
	}
	entries := make([]Entry, 0, len(latest))
	for _, i := range latest {
		entries = append(entries, Entry{
			Key:   append([]byte{}, dump.Entries[i].Key...),
			Value: append([]byte{}, dump.Entries[i].Value...),
		})
	}
	sort.Slice(entries, func(a, b int) bool {
		return bytes.Compare(entries[a].Key, entries[b].Key) < 0
	})
	return Dump{Entries: entries}
}

// Equal reports whether both dumps hold the same pairs in the same order.
func (d Dump) Equal(other Dump) bool {
	if len(d.Entries) != len(other.Entries) {
		return false
	}
	for i := range d.Entries {
		if !bytes.Equal(d.Entries[i].Key, other.Entries[i].Key) ||
			!bytes.Equal(d.Entries[i].Value, other.Entries[i].Value) {
			return false
		}
	}
	return true
}

// Fingerprint is the BLAKE3-256 digest of the canonical form of the dump.
// Dumps that load into identical stores share a fingerprint.
func (d Dump) Fingerprint() [32]byte {
	var buf []byte
	for _, entry := range Canonicalize(d).Entries {
		buf = binary.AppendUvarint(buf, uint64(len(entry.Key)))
		buf = append(buf, entry.Key...)
		buf = binary.AppendUvarint(buf, uint64(len(entry.Value)))
		buf = append(buf, entry.Value...)
	}
	return blake3.Sum256(buf)
}

// --- Wire format ---
//
// {"state_dump":[[[107,101,121],[118]], ...]}: an ordered list of pairs whose
// elements are arrays of byte values.

type wireDump struct {
	StateDump []json.RawMessage `json:"state_dump"`
}

type byteArray []byte

func (b byteArray) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+4*len(b))
	out = append(out, '[')
	for i, c := range b {
		if i > 0 {
			out = append(out, ',')
		}
		out = strconv.AppendUint(out, uint64(c), 10)
	}
	return append(out, ']'), nil
}

func (b *byteArray) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errors.New("byte array is null")
	}
	var nums []int64
	if err := json.Unmarshal(data, &nums); err != nil {
		return err
	}
	out := make([]byte, len(nums))
	for i, n := range nums {
		if n < 0 || n > 0xff {
			return fmt.Errorf("byte value %d out of range", n)
		}
		out[i] = byte(n)
	}
	*b = out
	return nil
}

func (d Dump) MarshalJSON() ([]byte, error) {
	pairs := make([][2]byteArray, len(d.Entries))
	for i, entry := range d.Entries {
		pairs[i] = [2]byteArray{entry.Key, entry.Value}
	}
	return json.Marshal(struct {
		StateDump [][2]byteArray `json:"state_dump"`
	}{StateDump: pairs})
}

func (d *Dump) UnmarshalJSON(data []byte) error {
	var wire wireDump
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedDump, err)
	}
	if wire.StateDump == nil {
		return fmt.Errorf("%w: missing state_dump", ErrMalformedDump)
	}
	entries := make([]Entry, 0, len(wire.StateDump))
	for i, raw := range wire.StateDump {
		var pair []byteArray
		if err := json.Unmarshal(raw, &pair); err != nil {
			return fmt.Errorf("%w: pair %d: %v", ErrMalformedDump, i, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("%w: pair %d has %d elements", ErrMalformedDump, i, len(pair))
		}
		entries = append(entries, Entry{Key: []byte(pair[0]), Value: []byte(pair[1])})
	}
	d.Entries = entries
	return nil
}
