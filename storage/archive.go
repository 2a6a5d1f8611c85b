package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
	bolt "go.etcd.io/bbolt"
)

// ErrNotFound is returned when the archive holds no dump for an id.
var ErrNotFound = errors.New("storage: dump not found")

const (
	BackendLevelDB = "leveldb"
	BackendBolt    = "bolt"

	dumpKeyPrefix = "dump:"
)

var bucketDumps = []byte("dumps_by_id")

// Archive persists state dumps between invocations on the host side, keyed by
// ownable id. Dumps are stored in their JSON wire form.
type Archive interface {
	Put(id string, dump Dump) error
	Get(id string) (Dump, error)
	Delete(id string) error
	IDs() ([]string, error)
	Close() error
}

// OpenArchive opens the archive at path using the named backend.
func OpenArchive(backend, path string) (Archive, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case "", BackendLevelDB:
		return NewLevelDBArchive(path)
	case BackendBolt:
		return NewBoltArchive(path)
	default:
		return nil, fmt.Errorf("unknown archive backend %q", backend)
	}
}

func validateID(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("ownable id required")
	}
	return nil
}

func decodeStored(id string, data []byte) (Dump, error) {
	var dump Dump
	if err := json.Unmarshal(data, &dump); err != nil {
		return Dump{}, fmt.Errorf("decode dump %s: %w", id, err)
	}
	return dump, nil
}

// --- LevelDB archive ---

// LevelDBArchive is a persistent dump archive using LevelDB.
type LevelDBArchive struct {
	db *leveldb.DB
}

// NewLevelDBArchive creates or opens a LevelDB database at the specified path.
func NewLevelDBArchive(path string) (*LevelDBArchive, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("leveldb archive path required")
	}
	db, err := leveldb.OpenFile(trimmed, nil)
	if err != nil {
		return nil, fmt.Errorf("open leveldb archive: %w", err)
	}
	return &LevelDBArchive{db: db}, nil
}

func (a *LevelDBArchive) Put(id string, dump Dump) error {
	if err := validateID(id); err != nil {
		return err
	}
	data, err := json.Marshal(dump)
	if err != nil {
		return err
	}
	return a.db.Put([]byte(dumpKeyPrefix+id), data, nil)
}

func (a *LevelDBArchive) Get(id string) (Dump, error) {
	data, err := a.db.Get([]byte(dumpKeyPrefix+id), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return Dump{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Dump{}, fmt.Errorf("load dump %s: %w", id, err)
	}
	return decodeStored(id, data)
}

func (a *LevelDBArchive) Delete(id string) error {
	return a.db.Delete([]byte(dumpKeyPrefix+id), nil)
}

// IDs lists archived ids in ascending order.
func (a *LevelDBArchive) IDs() ([]string, error) {
	it := a.db.NewIterator(util.BytesPrefix([]byte(dumpKeyPrefix)), nil)
	defer it.Release()
	ids := make([]string, 0)
	for it.Next() {
		ids = append(ids, strings.TrimPrefix(string(it.Key()), dumpKeyPrefix))
	}
	if err := it.Error(); err != nil {
		return nil, fmt.Errorf("iterate archive: %w", err)
	}
	return ids, nil
}

// Close closes the database connection.
func (a *LevelDBArchive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

// --- Bolt archive ---

// BoltArchive keeps dumps in a single bbolt bucket.
type BoltArchive struct {
	db *bolt.DB
}

// NewBoltArchive opens (or creates) a bbolt file at path. Missing parent
// directories are created.
func NewBoltArchive(path string) (*BoltArchive, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, fmt.Errorf("bolt archive path required")
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, err
	}
	db, err := bolt.Open(trimmed, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bbolt: %w", err)
	}
	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketDumps)
		return err
	}); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create bucket %s: %w", bucketDumps, err)
	}
	return &BoltArchive{db: db}, nil
}

func (a *BoltArchive) Put(id string, dump Dump) error {
	if err := validateID(id); err != nil {
		return err
	}
	data, err := json.Marshal(dump)
	if err != nil {
		return err
	}
	return a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDumps).Put([]byte(id), data)
	})
}

func (a *BoltArchive) Get(id string) (Dump, error) {
	var data []byte
	if err := a.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketDumps).Get([]byte(id)); v != nil {
			data = append([]byte{}, v...)
		}
		return nil
	}); err != nil {
		return Dump{}, err
	}
	if data == nil {
		return Dump{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return decodeStored(id, data)
}

func (a *BoltArchive) Delete(id string) error {
	return a.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDumps).Delete([]byte(id))
	})
}

// IDs lists archived ids; bbolt iterates keys in byte order.
func (a *BoltArchive) IDs() ([]string, error) {
	ids := make([]string, 0)
	err := a.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketDumps).ForEach(func(k, _ []byte) error {
			ids = append(ids, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (a *BoltArchive) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}
