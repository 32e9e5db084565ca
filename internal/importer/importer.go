// Package importer loads catalog stock from CSV exports into the database.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/keons0101/retail-dashboard-app/internal/domain"
)

type ProductWriter interface {
	Upsert(ctx context.Context, product domain.Product) (*domain.Product, error)
}

// CSVImporter reads a flat product CSV and inserts/updates rows by name.
// Expected headers: name, description, price, stock, category, rating.
// Column order is free and unknown columns are ignored.
type CSVImporter struct {
	reader      *csv.Reader
	productRepo ProductWriter
}

func NewCSVImporter(r io.Reader, repo ProductWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:      csvr,
		productRepo: repo,
	}
}

// Run parses CSV rows and upserts one product per row. It stops at the first
// bad row, returning the count imported so far.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["name"]; !ok {
		return 0, errors.New("missing required column: name")
	}

	var imported int
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		product, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if product == nil {
			continue
		}

		if _, err := i.productRepo.Upsert(ctx, *product); err != nil {
			return imported, fmt.Errorf("upsert product %q: %w", product.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*domain.Product, error) {
	name := pick(record, index, "name")
	if name == "" {
		// Blank rows are tolerated, a row with other fields but no name is not.
		if strings.TrimSpace(strings.Join(record, "")) == "" {
			return nil, nil
		}
		return nil, errors.New("missing product name")
	}

	price, err := parseFloat(pick(record, index, "price"))
	if err != nil {
		return nil, fmt.Errorf("product %q: bad price: %w", name, err)
	}
	if price < 0 {
		return nil, fmt.Errorf("product %q: negative price", name)
	}

	stock, err := parseInt(pick(record, index, "stock"))
	if err != nil {
		return nil, fmt.Errorf("product %q: bad stock: %w", name, err)
	}
	if stock < 0 {
		return nil, fmt.Errorf("product %q: negative stock", name)
	}

	rating, err := parseFloat(pick(record, index, "rating"))
	if err != nil {
		return nil, fmt.Errorf("product %q: bad rating: %w", name, err)
	}
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("product %q: rating out of range", name)
	}

	return &domain.Product{
		Name:        name,
		Description: pick(record, index, "description"),
		Price:       price,
		Stock:       stock,
		Category:    pick(record, index, "category"),
		Rating:      rating,
	}, nil
}

func parseFloat(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
