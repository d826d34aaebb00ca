package compression

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// ErrCorruptData is returned when a payload is not a valid zlib stream
var ErrCorruptData = errors.New("corrupt compressed data")

// Compress encodes data as a zlib stream at best compression
func Compress(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)

	zw, err := zlib.NewWriterLevel(buf, zlib.BestCompression)
	if err != nil {
		return nil, fmt.Errorf("failed to create zlib writer: %w", err)
	}

	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, fmt.Errorf("failed to compress data: %w", err)
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to flush compressed data: %w", err)
	}

	return buf.Bytes(), nil
}

// Decompress restores a payload produced by Compress
func Decompress(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}
	defer zr.Close()

	out, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	return out, nil
}
