package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const indent = "    "

// JSONPath swaps the extension of path for .json.
// A leading dot on the file name is not an extension.
func JSONPath(path string) string {
	ext := filepath.Ext(path)
	if ext == filepath.Base(path) {
		ext = ""
	}
	return strings.TrimSuffix(path, ext) + ".json"
}

// Encode writes v as JSON indented with four spaces.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", indent)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// WriteFile writes v as JSON to path with its extension replaced by .json,
// creating missing parent directories. It returns the path written.
func WriteFile(path string, v any) (string, error) {
	if path == "" {
		return "", fmt.Errorf("output path is empty")
	}
	target := JSONPath(path)

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("creating output file: %w", err)
	}

	if err := Encode(f, v); err != nil {
		f.Close()
		return "", fmt.Errorf("writing report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing output file: %w", err)
	}
	return target, nil
}
