package storage

import (
	"github.com/syndtr/goleveldb/leveldb/comparer"
	"github.com/syndtr/goleveldb/leveldb/memdb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Order controls the direction of a range scan.
type Order int

const (
	Ascending Order = iota
	Descending
)

// Store is the ordered key-value state owned by a single contract
// invocation. Keys compare byte-wise.
type Store interface {
	Get(key []byte) ([]byte, bool)
	Set(key, value []byte)
	Remove(key []byte)
	// Range visits every entry with start <= key < end in the given order
	// until fn returns false. Nil bounds are open.
	Range(start, end []byte, order Order, fn func(key, value []byte) bool)
}

// --- In-memory store (one per invocation) ---

// MemoryStore keeps entries in a goleveldb memdb skiplist, so iteration
// order is ascending byte order by construction.
type MemoryStore struct {
	db *memdb.DB
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{db: memdb.New(comparer.DefaultComparer, 0)}
}

// Get returns a copy of the value stored under key.
func (s *MemoryStore) Get(key []byte) ([]byte, bool) {
	value, err := s.db.Get(key)
	if err != nil {
		return nil, false
	}
	return append([]byte{}, value...), true
}

// Set inserts or overwrites key. The store keeps its own copy of both slices.
func (s *MemoryStore) Set(key, value []byte) {
	// memdb.Put only fails on a released iterator, which never happens here.
	_ = s.db.Put(key, value)
}

func (s *MemoryStore) Remove(key []byte) {
	_ = s.db.Delete(key)
}

func (s *MemoryStore) Range(start, end []byte, order Order, fn func(key, value []byte) bool) {
	var r *util.Range
	if start != nil || end != nil {
		r = &util.Range{Start: start, Limit: end}
	}
	it := s.db.NewIterator(r)
	defer it.Release()

	first, next := it.First, it.Next
	if order == Descending {
		first, next = it.Last, it.Prev
	}
	for ok := first(); ok; ok = next() {
		key := append([]byte{}, it.Key()...)
		value := append([]byte{}, it.Value()...)
		if !fn(key, value) {
			return
		}
	}
}

// Len reports the number of entries in the store.
func (s *MemoryStore) Len() int {
	return s.db.Len()
}
