package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lvillar/badgekit/fields"
)

// customPrefix marks CSV columns that belong in a record's custom fields.
const customPrefix = fields.CustomFieldsKey + "."

// loadRecords reads a JSON array of records or a CSV file with a header row.
func loadRecords(path string) ([]fields.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening records: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return readCSVRecords(f)
	}
	var records []fields.Record
	if err := json.NewDecoder(f).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return records, nil
}

// readCSVRecords maps each row onto the header. Columns named
// "customFields.<key>" go to the custom map; everything else is standard.
// Empty cells are omitted so they stay unresolved.
func readCSVRecords(r io.Reader) ([]fields.Record, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("records CSV is empty")
		}
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	var records []fields.Record
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV line %d: %w", line, err)
		}
		rec := fields.NewRecord(make(map[string]string, len(row)))
		for i, v := range row {
			if v == "" {
				continue
			}
			key := strings.TrimSpace(header[i])
			if custom, ok := strings.CutPrefix(key, customPrefix); ok {
				if rec.Custom == nil {
					rec.Custom = make(map[string]string)
				}
				rec.Custom[custom] = v
				continue
			}
			rec.Standard[key] = v
		}
		records = append(records, rec)
	}
	return records, nil
}
