package catalog

import (
	"sort"
	"strconv"

	"catalogmigrate/dump"
)

// minorUnitThreshold splits the two price conventions mixed in the source
// data: amounts at or above it are stored in minor units and must be scaled
// down to major units. Truncation by integer division is intentional.
const minorUnitThreshold = 10000

// Joiner holds the foreign-key lookups built from the dump's secondary
// tables. Keys are the raw string ids from the dump; a missing key always
// resolves to the empty value, never an error.
type Joiner struct {
	categoryNames   map[string]string    // category id -> name
	productCats     map[string][]string  // product id -> category names, join-row order
	productImages   map[string][]string  // product id -> urls, position order
	productVariants map[string][]Variant // product id -> variants, row order
	variantPrices   map[string]Price     // variant id -> resolved price
}

// NewJoiner builds all lookups from the dump in one pass per table.
func NewJoiner(src *dump.Dump) *Joiner {
	j := &Joiner{}
	j.loadCategories(src.TableRows(TableCategories))
	j.loadProductCategories(src.TableRows(TableProductCategories))
	j.loadImages(src.TableRows(TableProductImages))
	j.loadVariants(src.TableRows(TableVariants))
	j.loadPrices(src.TableRows(TablePrices))
	return j
}

// Categories returns the product's category names in join-row order.
func (j *Joiner) Categories(productID string) []string {
	return j.productCats[productID]
}

// Images returns the product's image urls sorted ascending by position.
func (j *Joiner) Images(productID string) []string {
	return j.productImages[productID]
}

// Variants returns a copy of the product's variants in source-row order.
func (j *Joiner) Variants(productID string) []Variant {
	src := j.productVariants[productID]
	if src == nil {
		return nil
	}
	out := make([]Variant, len(src))
	copy(out, src)
	return out
}

// PriceFor returns the resolved price for a variant id, if any.
func (j *Joiner) PriceFor(variantID string) (Price, bool) {
	p, ok := j.variantPrices[variantID]
	return p, ok
}

func (j *Joiner) loadCategories(rows []string) {
	j.categoryNames = make(map[string]string, len(rows))
	for _, row := range rows {
		fields := dump.Fields(row)
		if len(fields) < minCategoryFields {
			continue
		}
		j.categoryNames[fields[catColID]] = fields[catColName]
	}
}

func (j *Joiner) loadProductCategories(rows []string) {
	j.productCats = make(map[string][]string)
	for _, row := range rows {
		fields := dump.Fields(row)
		if len(fields) < minProductCatFields {
			continue
		}
		productID := fields[pcColProductID]
		// Join rows pointing at a category the dump never defined are
		// dropped silently.
		name, ok := j.categoryNames[fields[pcColCategoryID]]
		if !ok {
			continue
		}
		j.productCats[productID] = append(j.productCats[productID], name)
	}
}

func (j *Joiner) loadImages(rows []string) {
	type positioned struct {
		position int
		url      string
	}
	byProduct := make(map[string][]positioned)

	for _, row := range rows {
		fields := dump.Fields(row)
		if len(fields) < minImageFields {
			continue
		}
		position, ok := dump.Int(fields, imgColPosition)
		if !ok {
			position = PositionSentinel
		}
		productID := fields[imgColProductID]
		byProduct[productID] = append(byProduct[productID], positioned{position, fields[imgColURL]})
	}

	j.productImages = make(map[string][]string, len(byProduct))
	for productID, imgs := range byProduct {
		sort.SliceStable(imgs, func(a, b int) bool { return imgs[a].position < imgs[b].position })
		urls := make([]string, len(imgs))
		for i, img := range imgs {
			urls[i] = img.url
		}
		j.productImages[productID] = urls
	}
}

func (j *Joiner) loadVariants(rows []string) {
	j.productVariants = make(map[string][]Variant)
	for _, row := range rows {
		fields := dump.Fields(row)
		if len(fields) < minVariantFields {
			continue
		}
		id, ok := dump.Int(fields, varColID)
		if !ok {
			continue
		}
		productID := fields[varColProductID]
		j.productVariants[productID] = append(j.productVariants[productID], Variant{
			ID:       id,
			Name:     fields[varColName],
			SKU:      fields[varColSKU],
			Currency: Currency,
			Stock:    DefaultStock,
			Active:   dump.Bool(fields, varColActive),
		})
	}
}

func (j *Joiner) loadPrices(rows []string) {
	j.variantPrices = make(map[string]Price)
	for _, row := range rows {
		fields := dump.Fields(row)
		if len(fields) < minPriceFields {
			continue
		}
		amount, ok := normalizeAmount(fields[priceColAmount])
		if !ok {
			continue
		}
		// Last write wins when a variant has duplicate price rows.
		j.variantPrices[fields[priceColVariantID]] = Price{Amount: amount, Currency: Currency}
	}
}

// normalizeAmount parses a raw price field and applies the minor-unit
// scaling rule. A field that doesn't parse as an integer means no price.
func normalizeAmount(raw string) (int, bool) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return scaleAmount(n), true
}

func scaleAmount(n int) int {
	if n >= minorUnitThreshold {
		return n / 100
	}
	return n
}
