package catalog

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/rs/zerolog/log"

	"catalogmigrate/dump"
)

// maxSkipReasons caps how many individual skip diagnostics a run surfaces.
const maxSkipReasons = 5

// Stats summarizes one catalog build for the run report.
type Stats struct {
	Built       int
	Skipped     int
	SkipReasons []string
}

func (s *Stats) skip(reason string) {
	s.Skipped++
	if reason != "" && len(s.SkipReasons) < maxSkipReasons {
		s.SkipReasons = append(s.SkipReasons, reason)
	}
}

// Build runs the full forward pipeline over a dump: extract the six tables,
// join them, and emit one record per well-formed product, sorted ascending
// by id.
func Build(src *dump.Dump) ([]Product, *Stats) {
	joiner := NewJoiner(src)
	rows := src.TableRows(TableProducts)

	stats := &Stats{}
	products := make([]Product, 0, len(rows))

	for _, row := range rows {
		p, ok := buildProduct(dump.Fields(row), joiner, stats)
		if !ok {
			continue
		}
		products = append(products, p)
	}

	// Source order is not sorted; the catalog contract is.
	sort.Slice(products, func(a, b int) bool { return products[a].ID < products[b].ID })

	stats.Built = len(products)
	log.Info().Int("products", stats.Built).Int("skipped", stats.Skipped).Msg("catalog assembled")
	return products, stats
}

func buildProduct(fields []string, joiner *Joiner, stats *Stats) (Product, bool) {
	if len(fields) < minProductFields {
		stats.skip("")
		return Product{}, false
	}

	rawID := fields[prodColID]
	id, err := strconv.Atoi(rawID)
	if err != nil {
		stats.skip(fmt.Sprintf("skipping product %q: non-integer id", rawID))
		return Product{}, false
	}

	title, okTitle := dump.Value(fields, prodColTitle)
	slug, okSlug := dump.Value(fields, prodColSlug)
	if !okTitle || !okSlug {
		stats.skip(fmt.Sprintf("skipping product %s: title=%q slug=%q", rawID, title, slug))
		return Product{}, false
	}

	// Absent description collapses to the empty string; an absent thumbnail
	// stays null. The asymmetry is part of the catalog contract.
	description, _ := dump.Value(fields, prodColDescription)

	images := joiner.Images(rawID)
	thumbnail, hasThumb := dump.Value(fields, prodColThumbnail)
	if !hasThumb && len(images) > 0 {
		thumbnail = images[0]
		hasThumb = true
	}
	var thumb *string
	if hasThumb {
		thumb = &thumbnail
	}

	variants := joiner.Variants(rawID)
	for i := range variants {
		if price, ok := joiner.PriceFor(strconv.Itoa(variants[i].ID)); ok {
			amount := price.Amount
			variants[i].Price = &amount
			variants[i].Currency = price.Currency
		}
	}

	return Product{
		ID:          id,
		Title:       title,
		Slug:        slug,
		Description: description,
		Thumbnail:   thumb,
		Active:      dump.Bool(fields, prodColActive),
		Categories:  emptyIfNil(joiner.Categories(rawID)),
		Variants:    emptyVariantsIfNil(variants),
		Images:      emptyIfNil(images),
	}, true
}

// The catalog shape guarantees list fields are present even when empty.

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyVariantsIfNil(s []Variant) []Variant {
	if s == nil {
		return []Variant{}
	}
	return s
}
