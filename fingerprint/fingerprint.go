// Package fingerprint derives the content digests that identify
// certificates: a streamed digest of the certificate file and a
// deterministic fingerprint combining that digest with the
// certificate's descriptive fields.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileDigest streams the file at the given path through SHA-256 and
// returns the hex digest. The path must point to a readable regular
// file; a missing or non-regular path fails with os.ErrNotExist.
func FileDigest(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("could not stat certificate file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("certificate path %s is not a regular file: %w", path, os.ErrNotExist)
	}

	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("could not open certificate file: %w", err)
	}
	defer file.Close()

	digest := sha256.New()
	_, err = io.Copy(digest, file)
	if err != nil {
		return "", fmt.Errorf("could not read certificate file: %w", err)
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}

// Certificate combines a file digest with the descriptive fields into
// the deterministic fingerprint identifying one certificate instance.
// Identical inputs always produce the same fingerprint, which is what
// makes duplicate registrations detectable.
func Certificate(fileDigest, student, course, year string) string {
	material := fileDigest + "|" + student + "|" + course + "|" + year
	digest := sha256.Sum256([]byte(material))

	return hex.EncodeToString(digest[:])
}
