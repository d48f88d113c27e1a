package storage_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harik/certchain/ledger"
	"github.com/harik/certchain/storage"
)

func chainPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cert_chain.json")
}

// seedChain builds a small real chain: genesis, one mint and one
// transfer.
func seedChain(t *testing.T) []ledger.Block {
	t.Helper()

	bc := ledger.New(zerolog.Nop(), storage.NewMemStore())
	bc.Append(ledger.Mint{
		CertHash:    "c0ffee",
		FileHash:    "aa11",
		StudentName: "Ana",
		Course:      "CS101",
		Year:        "2025",
		Owner:       "Ana",
	})
	bc.Append(ledger.Transfer{CertHash: "c0ffee", From: "Ana", To: "org@example.com"})

	return bc.Blocks()
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := chainPath(t)
	store := storage.NewFileStore(path)
	blocks := seedChain(t)

	require.NoError(t, store.Save(blocks))

	restored, err := store.Load()
	require.NoError(t, err)

	// Every field survives exactly, including the stored hashes which
	// are never recomputed on load.
	assert.Equal(t, blocks, restored)
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := storage.NewFileStore(chainPath(t))

	_, err := store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFileStoreSaveReplacesAtomically(t *testing.T) {
	path := chainPath(t)
	store := storage.NewFileStore(path)
	blocks := seedChain(t)

	require.NoError(t, store.Save(blocks[:1]))
	require.NoError(t, store.Save(blocks))

	// No temporary file lingers and the final file is a valid chain.
	_, err := os.Stat(path + ".tmp")
	assert.ErrorIs(t, err, os.ErrNotExist)

	restored, err := store.Load()
	require.NoError(t, err)
	assert.Len(t, restored, len(blocks))
}

func TestFileStoreLoadRejectsBadRecords(t *testing.T) {
	blocks := seedChain(t)

	// Start from the valid wire form and damage it per case.
	valid, err := json.Marshal(blocks)
	require.NoError(t, err)

	rewrite := func(t *testing.T, mutate func(records []map[string]json.RawMessage)) string {
		t.Helper()
		var records []map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(valid, &records))
		mutate(records)
		damaged, err := json.Marshal(records)
		require.NoError(t, err)
		path := chainPath(t)
		require.NoError(t, os.WriteFile(path, damaged, 0644))
		return path
	}

	t.Run("missing current_hash", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			delete(records[1], "current_hash")
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("extra field", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			records[0]["nonce"] = json.RawMessage(`42`)
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("mistyped index", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			records[2]["index"] = json.RawMessage(`"two"`)
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("truncated hash", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			records[1]["prev_hash"] = json.RawMessage(`"abc123"`)
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("unknown payload type", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			records[1]["data"] = json.RawMessage(`{"type":"BURN"}`)
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("mint payload missing owner", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			records[1]["data"] = json.RawMessage(
				`{"type":"MINT","cert_hash":"c","file_hash":"f","student_name":"Ana","course":"CS101","year":"2025"}`)
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("transfer payload with mint fields", func(t *testing.T) {
		path := rewrite(t, func(records []map[string]json.RawMessage) {
			records[2]["data"] = json.RawMessage(
				`{"type":"TRANSFER","cert_hash":"c","from":"Ana","to":"Bob","owner":"Ana"}`)
		})
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})

	t.Run("not json at all", func(t *testing.T) {
		path := chainPath(t)
		require.NoError(t, os.WriteFile(path, []byte("not a chain"), 0644))
		_, err := storage.NewFileStore(path).Load()
		assert.Error(t, err)
	})
}

func TestDamagedFileFallsBackToFreshChain(t *testing.T) {
	path := chainPath(t)
	store := storage.NewFileStore(path)
	require.NoError(t, store.Save(seedChain(t)))

	// Strip current_hash from one record on disk.
	var records []map[string]json.RawMessage
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &records))
	delete(records[1], "current_hash")
	damaged, err := json.Marshal(records)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, damaged, 0644))

	// The blockchain recovers with a genesis-only chain and rewrites
	// the file.
	bc := ledger.New(zerolog.Nop(), store)
	require.Equal(t, 1, bc.Height())

	restored, err := store.Load()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	assert.Equal(t, ledger.KindGenesis, restored[0].Payload.Kind())
}

func TestMemStore(t *testing.T) {
	store := storage.NewMemStore()

	_, err := store.Load()
	assert.ErrorIs(t, err, os.ErrNotExist)

	blocks := seedChain(t)
	require.NoError(t, store.Save(blocks))

	restored, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, blocks, restored)
}
