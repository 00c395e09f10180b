// Package importer turns bank statement exports into transaction drafts.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"tracker/internal/core"
)

// Column names recognized in a header row.
const (
	ColDate        = "date"
	ColDescription = "description"
	ColAmount      = "amount"
	ColCategory    = "category"
	ColType        = "type"
)

// positional is the column order of files without a header row.
var positional = []string{ColDate, ColDescription, ColAmount, ColCategory, ColType}

var dateLayouts = []string{time.RFC3339, "2006-01-02", "02/01/2006"}

var (
	ErrMissingColumn = errors.New("missing required column")
	ErrBadDate       = errors.New("unrecognized date")
)

// Options tunes ReadCSV. The zero value reads comma separated files with
// dates in UTC.
type Options struct {
	// Location is used for dates without a zone.
	Location *time.Location
	// Comma is the field delimiter; 0 means ','.
	Comma rune
}

// RowError reports a skipped row. Line is 1-based and counts the header.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// ReadCSV parses rows of date, description, amount and the optional
// category and type columns. A first row naming those columns is treated as
// a header and may reorder them.
//
// Every returned draft is already normalized: the amount is non-negative,
// a negative amount without a type column is an expense, a positive one an
// income, and categories that are unknown or do not accept the type become
// "other". Bad rows are skipped and reported in the RowError slice; the
// error return is reserved for unreadable input.
func ReadCSV(r io.Reader, opts Options) ([]core.Draft, []RowError, error) {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	if opts.Comma != 0 {
		reader.Comma = opts.Comma
	}

	var (
		columns  map[string]int
		drafts   []core.Draft
		rowErrs  []RowError
		sawFirst bool
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("read csv: %w", err)
		}
		line, _ := reader.FieldPos(0)

		if !sawFirst {
			sawFirst = true
			var isHeader bool
			columns, isHeader = headerColumns(record)
			if isHeader {
				for _, required := range []string{ColDate, ColAmount} {
					if _, ok := columns[required]; !ok {
						return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
					}
				}
				continue
			}
		}
		if blank(record) {
			continue
		}

		d, err := parseRow(record, columns, opts.Location)
		if err != nil {
			rowErrs = append(rowErrs, RowError{Line: line, Err: err})
			continue
		}
		drafts = append(drafts, d)
	}
	return drafts, rowErrs, nil
}

// headerColumns maps column names to indexes. The first record is a header
// when it names at least one known column and does not start with a date.
func headerColumns(record []string) (map[string]int, bool) {
	known := make(map[string]bool, len(positional))
	for _, c := range positional {
		known[c] = true
	}

	columns := make(map[string]int, len(record))
	named := false
	for i, cell := range record {
		name := strings.ToLower(strings.TrimSpace(cell))
		if known[name] {
			named = true
		}
		columns[name] = i
	}
	if named && len(record) > 0 {
		if _, err := parseDate(strings.TrimSpace(record[0]), time.UTC); err != nil {
			return columns, true
		}
	}

	columns = make(map[string]int, len(positional))
	for i, c := range positional {
		columns[c] = i
	}
	return columns, false
}

func parseRow(record []string, columns map[string]int, loc *time.Location) (core.Draft, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	date, err := parseDate(field(ColDate), loc)
	if err != nil {
		return core.Draft{}, err
	}
	amount, err := cleanAmount(field(ColAmount))
	if err != nil {
		return core.Draft{}, fmt.Errorf("amount %q: %w", field(ColAmount), err)
	}
	cents, err := core.ParseSignedDecimalToCents(amount)
	if err != nil {
		return core.Draft{}, fmt.Errorf("amount %q: %w", field(ColAmount), err)
	}

	d := core.Draft{
		Type:        core.Income,
		Amount:      core.Money{Cents: cents},
		Description: field(ColDescription),
		Date:        date,
	}
	if raw := field(ColType); raw != "" {
		kind, err := core.ParseTransactionType(raw)
		if err != nil {
			return core.Draft{}, err
		}
		d.Type = kind
		d.Amount = d.Amount.Abs()
	}
	d = d.Normalize()
	d.Category = resolveCategory(field(ColCategory), d.Type)
	return d, nil
}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadDate, s)
}

// cleanAmount drops currency glyphs and spaces and rewrites the amount with
// a '.' decimal point and no grouping. When both separators appear the last
// one is the decimal point. A lone comma is a decimal comma only when it is
// followed by one or two digits; otherwise commas must form Western (1,234)
// or Indian (1,23,456) groups.
func cleanAmount(s string) (string, error) {
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == ',', r == '-', r == '+':
			return r
		default:
			return -1
		}
	}, s)

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")
	switch {
	case comma < 0:
		return s, nil
	case dot > comma:
		return strings.ReplaceAll(s, ",", ""), nil
	case dot >= 0:
		s = strings.ReplaceAll(s, ".", "")
		return strings.Replace(s, ",", ".", 1), nil
	}

	groups := strings.Split(s, ",")
	if len(groups) == 2 && len(groups[1]) >= 1 && len(groups[1]) <= 2 {
		return groups[0] + "." + groups[1], nil
	}
	if len(groups[len(groups)-1]) != 3 {
		return "", core.ErrInvalidAmount
	}
	for _, g := range groups[1 : len(groups)-1] {
		if len(g) != 2 && len(g) != 3 {
			return "", core.ErrInvalidAmount
		}
	}
	return strings.Join(groups, ""), nil
}

func resolveCategory(id string, kind core.TransactionType) string {
	id = strings.ToLower(id)
	if !core.IsKnownCategory(id) || !core.LookupCategory(id).Accepts(kind) {
		return core.OtherCategoryID
	}
	return id
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
