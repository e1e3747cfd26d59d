// Package dump reads PostgreSQL logical dumps and extracts the tab-separated
// row blocks exported by COPY ... FROM stdin.
package dump

import (
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// terminator marks the end of a COPY block's data rows.
const terminator = `\.`

// Dump is the full text of a logical dump, split into lines with line
// endings normalized to \n.
type Dump struct {
	lines []string
}

// ReadFile loads a dump from disk.
func ReadFile(path string) (*Dump, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(string(data)), nil
}

// New builds a Dump from raw text.
func New(text string) *Dump {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return &Dump{lines: strings.Split(text, "\n")}
}

// TableRows returns the data lines of the named table's COPY block, in
// order. Blank lines and comment lines are dropped. A table with no block
// in the dump (or a block with no terminator) yields zero rows; callers
// treat that as an empty table.
//
// Each header is matched to its nearest following terminator by a forward
// line scan, so adjacent blocks never bleed into each other.
func (d *Dump) TableRows(table string) []string {
	header := regexp.MustCompile(`^COPY public\.` + regexp.QuoteMeta(table) + ` \([^)]*\) FROM stdin;$`)

	for i, line := range d.lines {
		if !header.MatchString(line) {
			continue
		}
		var rows []string
		for _, raw := range d.lines[i+1:] {
			if raw == terminator {
				log.Info().Str("table", table).Int("rows", len(rows)).Msg("extracted COPY block")
				return rows
			}
			row := strings.TrimSpace(raw)
			if row == "" || strings.HasPrefix(row, "--") {
				continue
			}
			rows = append(rows, row)
		}
		log.Warn().Str("table", table).Msg("COPY block has no terminator, treating table as empty")
		return nil
	}

	log.Warn().Str("table", table).Msg("no COPY block found for table")
	return nil
}
