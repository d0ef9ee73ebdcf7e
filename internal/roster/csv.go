package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// LoadCSV reads a roster snapshot from a CSV file. The first record is
// the header naming the columns; subsequent records become rows indexed
// by position, matching the row indices letters were scanned against.
func LoadCSV(path string) (*Memory, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open roster: %w", err)
	}
	defer f.Close()
	m, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read roster %s: %w", path, err)
	}
	return m, nil
}

// ReadCSV parses CSV roster data from a reader.
func ReadCSV(r io.Reader) (*Memory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return NewMemory(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	m := NewMemory()
	idx := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", idx, err)
		}
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(record) {
				row[col] = record[i]
			}
		}
		m.rows[idx] = row
		idx++
	}
	return m, nil
}
