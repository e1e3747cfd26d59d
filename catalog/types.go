// Package catalog turns the six source tables of a shop dump into one
// denormalized, product-centric catalog.
package catalog

// Source table names as they appear in the dump's COPY headers.
const (
	TableProducts          = "products"
	TableVariants          = "variants"
	TablePrices            = "prices"
	TableProductImages     = "product_images"
	TableCategories        = "categories"
	TableProductCategories = "product_categories"
)

// Policy constants. These encode business decisions, not source data:
// stock is deliberately not read from the dump, and every price carries
// the same currency.
const (
	DefaultStock = 1
	Currency     = "Br"

	// Images without a usable position sort after all positioned images.
	PositionSentinel = 999
)

// Column positions within each table's COPY rows. Field identification is
// purely positional; the column list in the COPY header is never parsed.
// The min*Fields values are the shortest row each loader accepts.
const (
	prodColID          = 0
	prodColTitle       = 3
	prodColSlug        = 4
	prodColDescription = 5
	prodColThumbnail   = 6
	prodColActive      = 7
	minProductFields   = 5

	varColID         = 0
	varColProductID  = 3
	varColName       = 4
	varColSKU        = 5
	varColActive     = 8
	minVariantFields = 7

	priceColVariantID = 3
	priceColAmount    = 4
	minPriceFields    = 5

	imgColProductID = 3
	imgColURL       = 4
	imgColPosition  = 5
	minImageFields  = 5

	catColID          = 0
	catColName        = 1
	minCategoryFields = 2

	pcColProductID      = 0
	pcColCategoryID     = 1
	minProductCatFields = 2
)

// Product is one denormalized catalog record.
type Product struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Thumbnail   *string   `json:"thumbnail"`
	Active      bool      `json:"active"`
	Categories  []string  `json:"categories"`
	Variants    []Variant `json:"variants"`
	Images      []string  `json:"images"`
}

// Variant is one sellable variation of a product. Price stays nil when the
// prices table has no usable row for the variant. The active flag is kept
// for the joiner's bookkeeping but is not part of the catalog shape.
type Variant struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Price    *int   `json:"price"`
	Currency string `json:"currency"`
	Stock    int    `json:"stock"`
	Active   bool   `json:"-"`
}

// Price is a resolved variant price.
type Price struct {
	Amount   int
	Currency string
}
