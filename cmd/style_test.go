package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/harik/certchain/ledger"
)

func TestSummarizeBlock(t *testing.T) {
	t.Run("mint", func(t *testing.T) {
		block := ledger.Block{
			Index:     1,
			Timestamp: 1700000000,
			Payload: ledger.Mint{
				CertHash:    "0123456789abcdef0123456789abcdef",
				StudentName: "Ana",
				Course:      "CS101",
				Year:        "2025",
				Owner:       "Ana",
			},
		}

		line := summarizeBlock(block)
		assert.Contains(t, line, "#1 MINT")
		assert.Contains(t, line, "student: Ana")
		assert.Contains(t, line, "course: CS101")
		assert.Contains(t, line, "cert_hash: 0123456789ab...")
	})

	t.Run("transfer", func(t *testing.T) {
		block := ledger.Block{
			Index:     2,
			Timestamp: 1700000000,
			Payload:   ledger.Transfer{CertHash: "0123456789abcdef", From: "Ana", To: "Bob"},
		}

		line := summarizeBlock(block)
		assert.Contains(t, line, "#2 TRANSFER")
		assert.Contains(t, line, "from: Ana -> to: Bob")
	})

	t.Run("genesis has no certificate fields", func(t *testing.T) {
		block := ledger.Block{
			Index:     0,
			Timestamp: 1700000000,
			Payload:   ledger.Genesis{Note: "anchor"},
		}

		line := summarizeBlock(block)
		assert.Contains(t, line, "#0 GENESIS")
		assert.NotContains(t, line, "cert_hash")
	})
}

func TestShortHash(t *testing.T) {
	assert.Equal(t, "abc", shortHash("abc"))
	assert.Equal(t, "0123456789ab", shortHash("0123456789abcdef"))
}
