package ledger

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// GenesisNote is the free-text marker stored in the genesis payload.
const GenesisNote = "Decentralized Certificate Registry"

// Store persists the full chain and loads it back at startup. Saving
// always rewrites the complete chain; the chains this registry handles
// stay small enough that the full rewrite is acceptable.
type Store interface {
	Load() ([]Block, error)
	Save(blocks []Block) error
}

// Blockchain owns the ordered, hash-linked sequence of blocks. All
// mutations go through Append; nothing else touches the sequence.
type Blockchain struct {
	mu     sync.RWMutex
	log    zerolog.Logger
	store  Store
	blocks []Block
}

// New restores a blockchain from the given store. When loading fails
// for any reason, or the stored chain violates the linkage invariants,
// the previous content is discarded and a fresh single-block chain
// holding only the genesis block is created and persisted. That
// recovery is deliberate: a chain that cannot be read back in full is
// treated as lost.
func New(log zerolog.Logger, store Store) *Blockchain {
	bc := &Blockchain{
		log:   log.With().Str("component", "blockchain").Logger(),
		store: store,
	}

	blocks, err := store.Load()
	if err == nil {
		err = validateChain(blocks)
	}
	if err != nil {
		bc.log.Warn().Err(err).Msg("could not restore chain, creating new chain")
		bc.bootstrap()
		return bc
	}

	bc.blocks = blocks
	bc.log.Info().Int("blocks", len(blocks)).Msg("chain restored")

	return bc
}

// bootstrap replaces the chain with a single genesis block and saves
// it.
func (bc *Blockchain) bootstrap() {
	payload := Genesis{Note: GenesisNote}
	genesis := Block{
		Index:       0,
		Timestamp:   time.Now().Unix(),
		PrevHash:    SentinelHash,
		Payload:     payload,
		CurrentHash: genesisHash(payload),
	}
	bc.blocks = []Block{genesis}
	bc.save()
}

// Append creates a block for the given payload, links it to the chain
// tail and persists the full chain. Appending is total: payload
// checks (duplicates, existence) belong to the calling flow, and a
// persistence failure leaves the in-memory chain ahead of the on-disk
// one until a later save succeeds.
func (bc *Blockchain) Append(payload Payload) Block {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	latest := bc.blocks[len(bc.blocks)-1]
	now := time.Now()
	block := Block{
		Index:       len(bc.blocks),
		Timestamp:   now.Unix(),
		PrevHash:    latest.CurrentHash,
		Payload:     payload,
		CurrentHash: computeHash(payload, latest.CurrentHash, len(bc.blocks), now),
	}

	bc.blocks = append(bc.blocks, block)
	bc.save()

	return block
}

// Latest returns the block at the tail of the chain.
func (bc *Blockchain) Latest() Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return bc.blocks[len(bc.blocks)-1]
}

// Height returns the number of blocks in the chain.
func (bc *Blockchain) Height() int {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return len(bc.blocks)
}

// HasCertificate reports whether any block refers to the given
// fingerprint. Both mint and transfer events count, so a transferred
// certificate keeps reporting true.
func (bc *Blockchain) HasCertificate(certHash string) bool {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	// Genesis payloads report the empty fingerprint as their
	// no-certificate sentinel; it must never match a query.
	if certHash == "" {
		return false
	}

	for _, block := range bc.blocks {
		if block.Payload.Certificate() == certHash {
			return true
		}
	}

	return false
}

// History returns, in chain order, every block whose payload refers to
// the given fingerprint. An empty result means the certificate is
// unknown.
func (bc *Blockchain) History(certHash string) []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	var history []Block
	for _, block := range bc.blocks {
		if certHash != "" && block.Payload.Certificate() == certHash {
			history = append(history, block)
		}
	}

	return history
}

// Blocks returns a copy of the entire chain in order.
func (bc *Blockchain) Blocks() []Block {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	blocks := make([]Block, len(bc.blocks))
	copy(blocks, bc.blocks)

	return blocks
}

// VerifyLinkage checks the pointer consistency of the chain: genesis
// shape, index continuity and previous-hash linkage. It does not
// recompute any hash; stored hashes are unverifiable because the
// creation instant folded into them is not kept.
func (bc *Blockchain) VerifyLinkage() error {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	return validateChain(bc.blocks)
}

// save rewrites the persisted chain. A failure is reported but not
// retried; the in-memory chain stays authoritative.
func (bc *Blockchain) save() {
	err := bc.store.Save(bc.blocks)
	if err != nil {
		bc.log.Error().Err(err).Int("blocks", len(bc.blocks)).Msg("could not persist chain")
	}
}

// validateChain enforces the linkage invariants over a full chain.
func validateChain(blocks []Block) error {
	if len(blocks) == 0 {
		return fmt.Errorf("empty chain")
	}

	genesis := blocks[0]
	if genesis.Payload.Kind() != KindGenesis {
		return fmt.Errorf("first block is not genesis: %s", genesis.Payload.Kind())
	}
	if genesis.PrevHash != SentinelHash {
		return fmt.Errorf("invalid genesis prev hash: %s", genesis.PrevHash)
	}

	for i, block := range blocks {
		if block.Index != i {
			return fmt.Errorf("invalid index at position %d: got %d", i, block.Index)
		}
		if i == 0 {
			continue
		}
		if block.PrevHash != blocks[i-1].CurrentHash {
			return fmt.Errorf("broken link at block %d: prev hash %s does not match %s",
				i, block.PrevHash, blocks[i-1].CurrentHash)
		}
	}

	return nil
}
