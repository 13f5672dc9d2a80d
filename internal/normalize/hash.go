package normalize

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"strings"
)

// FileHash computes the hex-encoded SHA-256 of the file at path.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

// RecordsHash computes a stable hex SHA-256 over ordered records. Fields are
// trimmed and null-separated; records are newline-separated.
func RecordsHash(records [][]string) string {
	h := sha256.New()
	for _, rec := range records {
		for _, v := range rec {
			h.Write([]byte(strings.TrimSpace(v)))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
