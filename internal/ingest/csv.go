package ingest

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// rowMaps reads delimited content into one map per data row, keyed by
// normalized header name. Ragged rows are tolerated, malformed rows are
// skipped, and a missing or unreadable header yields no rows. Parsing
// never fails.
func rowMaps(content []byte) []map[string]string {
	r := csv.NewReader(bytes.NewReader(content))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil
	}
	keys := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\uFEFF")
		}
		keys[i] = normalizeHeader(h)
	}

	var rows []map[string]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		row := make(map[string]string, len(keys))
		for i, v := range rec {
			if i >= len(keys) {
				break
			}
			row[keys[i]] = v
		}
		rows = append(rows, row)
	}
	return rows
}

// normalizeHeader lower-cases a column name and strips spaces and
// underscores, so "Alarm Type", "alarm_type", and "AlarmType" all
// resolve identically.
func normalizeHeader(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	return strings.ReplaceAll(s, "_", "")
}

// first returns the first present-and-non-empty column among keys.
func first(row map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := row[k]; v != "" {
			return v
		}
	}
	return ""
}

// numeric resolves the first present-and-non-empty column among keys and
// parses it as a float. The first present column decides: if its value
// does not parse, the result is 0.0 and later aliases are not consulted.
func numeric(row map[string]string, keys ...string) float64 {
	for _, k := range keys {
		v, ok := row[k]
		if !ok || v == "" {
			continue
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0.0
		}
		return f
	}
	return 0.0
}

// orUnknown substitutes the UNKNOWN placeholder for empty values.
func orUnknown(v string) string {
	if v == "" {
		return "UNKNOWN"
	}
	return v
}
