package catalog

import (
	"bytes"
	"encoding/json"
	"os"
)

// WriteFile serializes the catalog to path as an indented JSON array.
// HTML escaping is off so titles and urls survive byte-for-byte. The whole
// document is encoded in memory first; nothing is written on failure.
func WriteFile(path string, products []Product) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(products); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}

// ReadFile loads a catalog previously produced by WriteFile.
func ReadFile(path string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}
