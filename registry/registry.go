// Package registry implements the certificate-level policies on top of
// the raw chain: registering a certificate exactly once, transferring
// it between holders and reconstructing its history.
package registry

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/harik/certchain/fingerprint"
	"github.com/harik/certchain/ledger"
)

// Sentinel errors reported to callers. None of them leaves a block
// behind; the chain is only appended to after all checks pass.
var (
	ErrDuplicateCertificate = errors.New("certificate already registered")
	ErrUnknownCertificate   = errors.New("no record found for certificate")
)

// Registry wraps a blockchain with the mint and transfer policies.
type Registry struct {
	log   zerolog.Logger
	chain *ledger.Blockchain
}

// New creates a registry operating on the given chain.
func New(log zerolog.Logger, chain *ledger.Blockchain) *Registry {
	return &Registry{
		log:   log.With().Str("component", "registry").Logger(),
		chain: chain,
	}
}

// Mint registers the certificate file at the given path for a student.
// It digests the file, derives the deterministic fingerprint from the
// digest and the descriptive fields, and appends a mint event with the
// student as first owner. A fingerprint already present anywhere in
// the chain is rejected as a duplicate.
func (r *Registry) Mint(path, student, course, year string) (ledger.Block, string, error) {
	fileHash, err := fingerprint.FileDigest(path)
	if err != nil {
		return ledger.Block{}, "", fmt.Errorf("could not digest certificate file: %w", err)
	}

	certHash := fingerprint.Certificate(fileHash, student, course, year)
	if r.chain.HasCertificate(certHash) {
		return ledger.Block{}, certHash, ErrDuplicateCertificate
	}

	block := r.chain.Append(ledger.Mint{
		CertHash:    certHash,
		FileHash:    fileHash,
		StudentName: student,
		Course:      course,
		Year:        year,
		Owner:       student,
	})
	r.log.Info().Int("index", block.Index).Str("cert_hash", certHash).Msg("certificate minted")

	return block, certHash, nil
}

// Transfer hands an existing certificate to a new holder. The current
// owner is resolved from the certificate's history and recorded as the
// sending party. Anyone may request a transfer; there is no
// authorization check, by longstanding policy of this registry.
func (r *Registry) Transfer(certHash, newOwner string) (ledger.Block, error) {
	history := r.chain.History(certHash)
	if len(history) == 0 {
		return ledger.Block{}, ErrUnknownCertificate
	}

	owner, _ := ledger.ResolveOwner(history)
	block := r.chain.Append(ledger.Transfer{
		CertHash: certHash,
		From:     owner,
		To:       newOwner,
	})
	r.log.Info().Int("index", block.Index).Str("cert_hash", certHash).
		Str("from", owner).Str("to", newOwner).Msg("certificate transferred")

	return block, nil
}

// Verify returns the full event history of a certificate in chain
// order, together with the resolved current owner.
func (r *Registry) Verify(certHash string) ([]ledger.Block, string, error) {
	history := r.chain.History(certHash)
	if len(history) == 0 {
		return nil, "", ErrUnknownCertificate
	}

	owner, _ := ledger.ResolveOwner(history)

	return history, owner, nil
}

// Owner resolves the current holder of a certificate.
func (r *Registry) Owner(certHash string) (string, error) {
	history := r.chain.History(certHash)
	if len(history) == 0 {
		return "", ErrUnknownCertificate
	}

	owner, ok := ledger.ResolveOwner(history)
	if !ok {
		return "", ErrUnknownCertificate
	}

	return owner, nil
}

// Ledger returns the entire chain for display.
func (r *Registry) Ledger() []ledger.Block {
	return r.chain.Blocks()
}
