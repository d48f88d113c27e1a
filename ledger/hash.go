package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// computeHash derives the chaining hash for a block about to be
// appended. The creation instant is folded into the digest but never
// stored alongside the block, so two calls with identical inputs yield
// different hashes and a stored hash cannot be recomputed later. That
// is the behavior of record for this chain and must not change.
func computeHash(payload Payload, prevHash string, chainLen int, now time.Time) string {
	material := fmt.Sprintf("%s|%s|%d|%d", payload.canonical(), prevHash, chainLen, now.UnixNano())
	digest := sha256.Sum256([]byte(material))
	return hex.EncodeToString(digest[:])
}

// genesisHash derives the hash of the one-time genesis block. Unlike
// appended blocks it folds no timestamp, matching the bootstrap rule
// the chain has always used.
func genesisHash(payload Genesis) string {
	digest := sha256.Sum256([]byte(payload.canonical()))
	return hex.EncodeToString(digest[:])
}
