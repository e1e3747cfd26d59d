package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"catalogmigrate/catalog"
)

// maxSizeLen bounds what the variant-name heuristic accepts as a size token.
const maxSizeLen = 10

// ImportCatalog loads the catalog into the redesigned schema, where rows are
// keyed by uuid surrogate ids generated client-side. Each product is one
// transaction: a failure rolls back that product alone and the run moves on.
func ImportCatalog(db *sql.DB, products []catalog.Product) error {
	var imported, failed int
	for _, p := range products {
		if err := importProduct(db, p); err != nil {
			log.Error().Int("product", p.ID).Err(err).Msg("product import rolled back")
			failed++
			continue
		}
		imported++
	}
	log.Info().Int("imported", imported).Int("failed", failed).Msg("import finished")

	if failed > 0 {
		return fmt.Errorf("%d of %d products failed to import", failed, len(products))
	}
	return nil
}

func importProduct(db *sql.DB, p catalog.Product) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	productID := uuid.New().String()
	basePrice := decimal.NewFromInt(int64(minVariantPrice(p.Variants)))

	if _, err := tx.Exec(
		`INSERT INTO products (id, name, description, base_price, category, image_url, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		productID, p.Title, nullable(p.Description), basePrice,
		firstCategory(p.Categories), nullablePtr(p.Thumbnail), p.Active,
	); err != nil {
		return fmt.Errorf("insert product %d: %w", p.ID, err)
	}

	for _, v := range p.Variants {
		// Upsert on the sku natural key and carry the surrogate id straight
		// into the dependent price row. RETURNING yields the existing id on
		// conflict, so no lookup-by-sku subquery is needed.
		var variantID string
		if err := tx.QueryRow(
			`INSERT INTO product_variants (id, product_id, sku, size, color, price_adjustment, stock_quantity)
			 VALUES ($1, $2, $3, $4, NULL, $5, $6)
			 ON CONFLICT (sku) DO UPDATE SET
			   stock_quantity = EXCLUDED.stock_quantity, size = EXCLUDED.size
			 RETURNING id`,
			uuid.New().String(), productID, v.SKU, sizeFromName(v.Name), decimal.Zero, v.Stock,
		).Scan(&variantID); err != nil {
			return fmt.Errorf("upsert variant %s: %w", v.SKU, err)
		}

		if v.Price == nil {
			continue
		}
		if _, err := tx.Exec(
			`INSERT INTO prices (variant_id, amount, currency)
			 VALUES ($1, $2, $3)
			 ON CONFLICT (variant_id) DO UPDATE SET
			   amount = EXCLUDED.amount, currency = EXCLUDED.currency`,
			variantID, decimal.NewFromInt(int64(*v.Price)), v.Currency,
		); err != nil {
			return fmt.Errorf("upsert price for variant %s: %w", v.SKU, err)
		}
	}

	for i, url := range p.Images {
		if _, err := tx.Exec(
			`INSERT INTO product_images (id, product_id, url, alt_text, display_order)
			 VALUES ($1, $2, $3, NULL, $4)`,
			uuid.New().String(), productID, url, i,
		); err != nil {
			return fmt.Errorf("insert image %d for product %d: %w", i, p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit product %d: %w", p.ID, err)
	}
	return nil
}

// sizeFromName pulls a size token off the end of a variant name like
// "Wide Leg Pearl Detail Jeans S". Long trailing words are not sizes.
func sizeFromName(name string) sql.NullString {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return sql.NullString{}
	}
	size := parts[len(parts)-1]
	if len(size) > maxSizeLen {
		return sql.NullString{}
	}
	return sql.NullString{String: size, Valid: true}
}

func firstCategory(categories []string) sql.NullString {
	if len(categories) == 0 {
		return sql.NullString{}
	}
	return sql.NullString{String: categories[0], Valid: true}
}

func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullablePtr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return nullable(*s)
}
