package storage

import (
	"os"
	"sync"

	"github.com/harik/certchain/ledger"
)

// MemStore keeps the chain in memory. It backs tests and ephemeral
// runs where nothing should touch the disk.
type MemStore struct {
	mu     sync.Mutex
	blocks []ledger.Block
	saved  bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Load returns the stored chain, or os.ErrNotExist when nothing has
// been saved yet, mirroring a missing chain file.
func (m *MemStore) Load() ([]ledger.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.saved {
		return nil, os.ErrNotExist
	}
	blocks := make([]ledger.Block, len(m.blocks))
	copy(blocks, m.blocks)

	return blocks, nil
}

// Save replaces the stored chain.
func (m *MemStore) Save(blocks []ledger.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.blocks = make([]ledger.Block, len(blocks))
	copy(m.blocks, blocks)
	m.saved = true

	return nil
}
