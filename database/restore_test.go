package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogmigrate/catalog"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func sampleProduct() catalog.Product {
	return catalog.Product{
		ID:          12,
		Title:       "Women's Coat",
		Slug:        "womens-coat",
		Description: "",
		Thumbnail:   strPtr("/images/coat.jpg"),
		Active:      true,
		Categories:  []string{"Coats"},
		Variants: []catalog.Variant{
			{ID: 100, Name: "Women's Coat S", SKU: "COAT-S", Price: intPtr(3500), Currency: "Br", Stock: 1},
			{ID: 101, Name: "Women's Coat M", SKU: "COAT-M", Price: intPtr(2900), Currency: "Br", Stock: 1},
			{ID: 102, Name: "Women's Coat L", SKU: "COAT-L", Currency: "Br", Stock: 1},
		},
		Images: []string{"/images/coat.jpg", "/images/coat-back.jpg"},
	}
}

func generate(t *testing.T, products []catalog.Product) []string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "restore_data.sql")
	require.NoError(t, GenerateRestoreScript(products, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n")
}

func TestGenerateRestoreScriptProductUpsert(t *testing.T) {
	stmts := generate(t, []catalog.Product{sampleProduct()})

	assert.Equal(t,
		"INSERT INTO products (id, title, slug, description, thumbnail, active, base_price) "+
			"VALUES (12, 'Women''s Coat', 'womens-coat', '', '/images/coat.jpg', true, 2900) "+
			"ON CONFLICT (id) DO UPDATE SET "+
			"title = EXCLUDED.title, slug = EXCLUDED.slug, description = EXCLUDED.description, "+
			"thumbnail = EXCLUDED.thumbnail, active = EXCLUDED.active, base_price = EXCLUDED.base_price;",
		stmts[0], "base_price is the minimum priced variant; quotes are doubled")
}

func TestGenerateRestoreScriptVariantAndPrice(t *testing.T) {
	stmts := generate(t, []catalog.Product{sampleProduct()})

	assert.Contains(t, stmts[1], "INSERT INTO product_variants")
	assert.Contains(t, stmts[1], "'COAT-S'")
	assert.Contains(t, stmts[1], "ON CONFLICT (sku) DO UPDATE SET")

	assert.Contains(t, stmts[2], "INSERT INTO prices")
	assert.Contains(t, stmts[2], "SELECT id, 3500, 'Br' FROM product_variants WHERE sku = 'COAT-S'")
	assert.Contains(t, stmts[2], "AND NOT EXISTS (SELECT 1 FROM prices WHERE variant_id = product_variants.id);")

	// An absent price inserts amount 0 so the script stays runnable.
	assert.Contains(t, stmts[6], "SELECT id, 0, 'Br' FROM product_variants WHERE sku = 'COAT-L'")
}

func TestGenerateRestoreScriptImagesAndSequence(t *testing.T) {
	stmts := generate(t, []catalog.Product{sampleProduct()})

	assert.Equal(t,
		"INSERT INTO product_images (product_id, url, position) VALUES (12, '/images/coat.jpg', 0) ON CONFLICT DO NOTHING;",
		stmts[7])
	assert.Equal(t,
		"INSERT INTO product_images (product_id, url, position) VALUES (12, '/images/coat-back.jpg', 1) ON CONFLICT DO NOTHING;",
		stmts[8])

	assert.Equal(t,
		"SELECT setval('products_id_seq', (SELECT MAX(id) FROM products));",
		stmts[len(stmts)-1])
}

func TestGenerateRestoreScriptNullThumbnail(t *testing.T) {
	p := sampleProduct()
	p.Thumbnail = nil
	p.Variants = nil
	p.Images = nil

	stmts := generate(t, []catalog.Product{p})
	assert.Contains(t, stmts[0], "'', NULL, true, 0)", "null thumbnail and zero base_price")
	assert.Len(t, stmts, 2, "product upsert plus sequence reset only")
}

func TestMinVariantPrice(t *testing.T) {
	assert.Equal(t, 0, minVariantPrice(nil))
	assert.Equal(t, 0, minVariantPrice([]catalog.Variant{{SKU: "A"}}), "unpriced variants don't count")
	assert.Equal(t, 2900, minVariantPrice(sampleProduct().Variants))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'plain'", quote("plain"))
	assert.Equal(t, "'it''s'", quote("it's"))
	assert.Equal(t, "NULL", quoteNullable(nil))
	assert.Equal(t, "'x'", quoteNullable(strPtr("x")))
}
