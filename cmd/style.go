package main

import (
	"time"

	"github.com/pterm/pterm"

	"github.com/harik/certchain/ledger"
)

// summarizeBlock renders a one-line summary of a block, keyed on its
// payload kind. Genesis blocks carry no certificate fields and get the
// bare form.
func summarizeBlock(block ledger.Block) string {
	t := time.Unix(block.Timestamp, 0).Format(time.ANSIC)
	switch payload := block.Payload.(type) {
	case ledger.Mint:
		return pterm.Sprintf("#%d %s | student: %s | course: %s | year: %s | cert_hash: %s... | time: %s",
			block.Index, payload.Kind(), payload.StudentName, payload.Course, payload.Year,
			shortHash(payload.CertHash), t)
	case ledger.Transfer:
		return pterm.Sprintf("#%d %s | cert_hash: %s... | from: %s -> to: %s | time: %s",
			block.Index, payload.Kind(), shortHash(payload.CertHash), payload.From, payload.To, t)
	default:
		return pterm.Sprintf("#%d %s | time: %s", block.Index, block.Payload.Kind(), t)
	}
}

// shortHash truncates a fingerprint for display.
func shortHash(hash string) string {
	if len(hash) <= 12 {
		return hash
	}
	return hash[:12]
}
