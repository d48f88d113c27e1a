package fingerprint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harik/certchain/fingerprint"
)

func TestFileDigest(t *testing.T) {
	dir := t.TempDir()

	t.Run("known content", func(t *testing.T) {
		path := filepath.Join(dir, "cert.pdf")
		require.NoError(t, os.WriteFile(path, []byte("hello"), 0644))

		digest, err := fingerprint.FileDigest(path)
		require.NoError(t, err)

		// sha256("hello")
		assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.pdf")
		require.NoError(t, os.WriteFile(path, nil, 0644))

		digest, err := fingerprint.FileDigest(path)
		require.NoError(t, err)

		// sha256("")
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", digest)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := fingerprint.FileDigest(filepath.Join(dir, "nope.pdf"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("directory instead of file", func(t *testing.T) {
		_, err := fingerprint.FileDigest(dir)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestCertificateFingerprint(t *testing.T) {
	first := fingerprint.Certificate("aa11", "Ana", "CS101", "2025")
	second := fingerprint.Certificate("aa11", "Ana", "CS101", "2025")

	// Deterministic: identical inputs, identical fingerprint.
	assert.Equal(t, first, second)
	assert.Len(t, first, 64)

	// Every field participates in the digest.
	assert.NotEqual(t, first, fingerprint.Certificate("bb22", "Ana", "CS101", "2025"))
	assert.NotEqual(t, first, fingerprint.Certificate("aa11", "Bob", "CS101", "2025"))
	assert.NotEqual(t, first, fingerprint.Certificate("aa11", "Ana", "CS102", "2025"))
	assert.NotEqual(t, first, fingerprint.Certificate("aa11", "Ana", "CS101", "2026"))

	// The delimiter keeps adjacent fields from bleeding into each
	// other.
	assert.NotEqual(t,
		fingerprint.Certificate("aa11", "AnaC", "S101", "2025"),
		fingerprint.Certificate("aa11", "Ana", "CS101", "2025"),
	)
}
