// Package database contains the inverse direction of the migration:
// regenerating SQL from a catalog, either as a standalone script or by
// loading a live PostgreSQL database directly.
package database

import (
	"fmt"
	"os"
	"strings"

	"catalogmigrate/catalog"
)

// GenerateRestoreScript writes an idempotent SQL script that re-imports the
// catalog into the shop schema: products upsert on id, variants upsert on
// their unique sku, prices attach to variants through a guarded insert, and
// the products id sequence is reset at the end. Statements are emitted one
// per line so the script diffs cleanly between runs.
//
// The script must run standalone under psql with no client-side state, which
// is why prices are linked to variants by sku lookup here; the connected
// importer propagates ids instead.
func GenerateRestoreScript(products []catalog.Product, outFile string) error {
	stmts := make([]string, 0, len(products)*4+1)
	for _, p := range products {
		stmts = append(stmts, productStatements(p)...)
	}
	stmts = append(stmts, "SELECT setval('products_id_seq', (SELECT MAX(id) FROM products));")

	return os.WriteFile(outFile, []byte(strings.Join(stmts, "\n")+"\n"), 0o644)
}

func productStatements(p catalog.Product) []string {
	stmts := []string{fmt.Sprintf(
		"INSERT INTO products (id, title, slug, description, thumbnail, active, base_price) "+
			"VALUES (%d, %s, %s, %s, %s, %t, %d) "+
			"ON CONFLICT (id) DO UPDATE SET "+
			"title = EXCLUDED.title, slug = EXCLUDED.slug, description = EXCLUDED.description, "+
			"thumbnail = EXCLUDED.thumbnail, active = EXCLUDED.active, base_price = EXCLUDED.base_price;",
		p.ID, quote(p.Title), quote(p.Slug), quote(p.Description), quoteNullable(p.Thumbnail), p.Active,
		minVariantPrice(p.Variants),
	)}

	for _, v := range p.Variants {
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO product_variants (product_id, sku, size, color, stock_quantity, price_adjustment, active, image) "+
				"VALUES (%d, %s, %s, NULL, %d, 0, true, NULL) "+
				"ON CONFLICT (sku) DO UPDATE SET "+
				"stock_quantity = EXCLUDED.stock_quantity, size = EXCLUDED.size, active = EXCLUDED.active;",
			p.ID, quote(v.SKU), quote(v.Name), v.Stock,
		))

		amount := 0
		if v.Price != nil {
			amount = *v.Price
		}
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO prices (variant_id, amount, currency) "+
				"SELECT id, %d, %s FROM product_variants WHERE sku = %s "+
				"AND NOT EXISTS (SELECT 1 FROM prices WHERE variant_id = product_variants.id);",
			amount, quote(v.Currency), quote(v.SKU),
		))
	}

	for i, url := range p.Images {
		stmts = append(stmts, fmt.Sprintf(
			"INSERT INTO product_images (product_id, url, position) VALUES (%d, %s, %d) ON CONFLICT DO NOTHING;",
			p.ID, quote(url), i,
		))
	}

	return stmts
}

// quote renders s as a SQL string literal, doubling embedded single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func quoteNullable(s *string) string {
	if s == nil {
		return "NULL"
	}
	return quote(*s)
}

// minVariantPrice is the cheapest priced variant, or 0 when no variant
// carries a price. It feeds the denormalized base_price column.
func minVariantPrice(variants []catalog.Variant) int {
	min := 0
	found := false
	for _, v := range variants {
		if v.Price == nil {
			continue
		}
		if !found || *v.Price < min {
			min = *v.Price
			found = true
		}
	}
	return min
}
