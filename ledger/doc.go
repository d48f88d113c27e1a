// Package ledger implements an immutable, hash-linked ledger for
// recording certificate issuance and ownership-transfer events.
//
// # Core Components
//
// Blockchain: An append-only log of certificate events anchored by a
// genesis block, with every block linked to its predecessor through
// the predecessor's hash.
//
// Block: A single event holding a tagged payload (genesis, mint or
// transfer) together with its position, creation time and chaining
// hashes.
//
// # Properties
//
// The chain guarantees linkage: every block's previous hash equals the
// stored hash of the block before it, and indices match positions.
// Stored hashes fold the creation instant without keeping it, so they
// are deliberately not recomputable after the fact; VerifyLinkage
// checks pointer consistency only.
//
// # Usage
//
// Restore a blockchain from a Store with New, append mint and transfer
// payloads as events occur, and query History plus ResolveOwner to
// reconstruct who currently holds a certificate.
package ledger
