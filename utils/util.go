package utils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
)

// Compress gzips data with the default compression level
func Compress(data []byte) ([]byte, error) {
	var compressed bytes.Buffer
	w := gzip.NewWriter(&compressed)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}

// Decompress reverses Compress
func Decompress(data []byte) ([]byte, error) {
	zipReader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zipReader.Close()
	return io.ReadAll(zipReader)
}

// WriteFile writes data to filePath, creating parent directories.
// With sidecar set, a gzipped copy is written next to it as filePath + ".gz".
func WriteFile(filePath string, data []byte, sidecar bool) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(filePath, data, os.FileMode(0o664)); err != nil {
		return err
	}
	if !sidecar {
		return nil
	}
	compressed, err := Compress(data)
	if err != nil {
		return err
	}
	return os.WriteFile(filePath+".gz", compressed, os.FileMode(0o664))
}
