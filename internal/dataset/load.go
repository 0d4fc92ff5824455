package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/patrikhermansson/vdist/core"
	"github.com/rs/zerolog/log"
)

// ReadVectors reads float64 vectors from a CSV file, one vector per row.
// Every row must have the same number of columns.
func ReadVectors(path string, skipHeader bool) ([][]float64, error) {
	log.Debug().Msgf("Opening CSV file: %s", path)
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	vectors, err := ReadVectorsFrom(file, skipHeader)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().Msgf("Loaded %d vectors from %s", len(vectors), path)
	return vectors, nil
}

// ReadVectorsFrom parses CSV rows from r into vectors.
func ReadVectorsFrom(r io.Reader, skipHeader bool) ([][]float64, error) {
	reader := csv.NewReader(r)
	// Row widths are checked below so the error carries ErrShapeMismatch.
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result [][]float64
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error: %w", err)
		}
		line++
		if skipHeader {
			skipHeader = false
			continue
		}
		row, err := ParseVector(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(result) > 0 && len(row) != len(result[0]) {
			return nil, fmt.Errorf("line %d: %w: row has %d values, expected %d",
				line, core.ErrShapeMismatch, len(row), len(result[0]))
		}
		result = append(result, row)
	}

	log.Debug().Msgf("Parsed %d rows", len(result))
	return result, nil
}

// ParseVector converts string fields into a vector.
func ParseVector(fields []string) ([]float64, error) {
	vec := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			return nil, fmt.Errorf("parse error at col %d: %w", i, err)
		}
		vec[i] = v
	}
	return vec, nil
}

// ParseVectorString parses a comma separated list such as "1,2.5,-3".
func ParseVectorString(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{}, nil
	}
	return ParseVector(strings.Split(s, ","))
}

// WriteVectors writes vectors to w as CSV rows.
func WriteVectors(w io.Writer, vectors [][]float64) error {
	writer := csv.NewWriter(w)
	for i, vec := range vectors {
		record := make([]string, len(vec))
		for j, v := range vec {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteVectorsFile writes vectors as CSV to the file at path, creating or
// truncating it.
func WriteVectorsFile(path string, vectors [][]float64) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteVectors(f, vectors); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
