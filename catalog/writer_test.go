package catalog

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogmigrate/dump"
)

func TestWriteReadRoundTrip(t *testing.T) {
	products, _ := Build(dump.New(fixtureDump))
	path := filepath.Join(t.TempDir(), "products_catalog.json")

	require.NoError(t, WriteFile(path, products))

	loaded, err := ReadFile(path)
	require.NoError(t, err)

	// The variant active flag is internal and not serialized.
	for i := range products {
		for j := range products[i].Variants {
			products[i].Variants[j].Active = false
		}
	}
	assert.Equal(t, products, loaded)
}

func TestWriteFileShape(t *testing.T) {
	products, _ := Build(dump.New(fixtureDump))
	path := filepath.Join(t.TempDir(), "products_catalog.json")
	require.NoError(t, WriteFile(path, products))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 3)

	for _, rec := range raw {
		for _, field := range []string{
			"id", "title", "slug", "description", "thumbnail",
			"active", "categories", "variants", "images",
		} {
			assert.Contains(t, rec, field)
		}
		assert.NotContains(t, string(rec["variants"]), `"active"`,
			"variant active flag is internal only")

		// List fields serialize as arrays even when empty.
		assert.NotEqual(t, "null", string(rec["categories"]))
		assert.NotEqual(t, "null", string(rec["variants"]))
		assert.NotEqual(t, "null", string(rec["images"]))
	}
}

func TestWriteFilePreservesUnicodeAndURLs(t *testing.T) {
	title := "Пальто «Зима» & Co"
	products := []Product{{
		ID:         1,
		Title:      title,
		Slug:       "palto-zima",
		Thumbnail:  nil,
		Categories: []string{},
		Variants:   []Variant{},
		Images:     []string{"/images/coat?size=m&color=black"},
	}}

	path := filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, WriteFile(path, products))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), title, "unicode must not be escaped")
	assert.Contains(t, string(data), "size=m&color=black", "ampersands must not be HTML-escaped")
	assert.Contains(t, string(data), `"thumbnail": null`)
}

func TestReadFileErrors(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "garbage.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err = ReadFile(path)
	assert.Error(t, err)
}
