package contract

import (
	"log/slog"

	"ownable/capability"
	"ownable/storage"
)

// OwnedDeps bundles the state and host capabilities of one invocation.
type OwnedDeps struct {
	Storage *storage.MemoryStore
	API     capability.API
	Querier capability.Querier
}

// LoadOwnedDeps prepares the dependencies for an invocation. A nil dump
// starts from an empty store.
func LoadOwnedDeps(dump *storage.Dump, logger *slog.Logger) OwnedDeps {
	store := storage.NewMemoryStore()
	if dump != nil {
		store = storage.Load(*dump)
	}
	return OwnedDeps{
		Storage: store,
		API:     capability.NewEmptyAPI(logger),
		Querier: capability.EmptyQuerier{},
	}
}
