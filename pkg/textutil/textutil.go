// Package textutil provides byte-level text utilities.
package textutil

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
)

// BinarySniffLength is the maximum number of bytes scanned for null-byte
// detection. Matches the heuristic used by Git and most editors.
const BinarySniffLength = 8000

// IsBinary reports whether data contains a null byte within the first
// BinarySniffLength bytes. Empty data is not binary.
func IsBinary(data []byte) bool {
	if len(data) == 0 {
		return false
	}

	sniff := data
	if len(sniff) > BinarySniffLength {
		sniff = sniff[:BinarySniffLength]
	}

	return bytes.IndexByte(sniff, 0) >= 0
}

// IsBinaryFile applies IsBinary to the head of the file at path.
func IsBinaryFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("sniff %s: %w", path, err)
	}
	defer f.Close()

	head := make([]byte, BinarySniffLength)

	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("sniff %s: %w", path, err)
	}

	return IsBinary(head[:n]), nil
}
