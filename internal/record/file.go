package record

import (
	"bufio"
	"fmt"
	"os"
)

// ReadFile loads a dataset from a text file, one record per line. Blank
// lines are skipped. Line content is not validated against any alphabet;
// any line up to MaxLength bytes is accepted as a record value.
//
// A missing or unreadable file, or a line beyond the length bound, is an
// error; the caller treats it as fatal for the whole run.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	var records []Record
	scanner := bufio.NewScanner(f)
	line := 0
	for scanner.Scan() {
		line++
		if len(scanner.Bytes()) == 0 {
			continue
		}
		if len(scanner.Bytes()) > MaxLength {
			return nil, fmt.Errorf("read %s: line %d is %d bytes, exceeds record limit %d",
				path, line, len(scanner.Bytes()), MaxLength)
		}
		records = append(records, Record(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

// WriteFile writes a dataset to a text file, one record per line,
// newline-terminated, in slice order. No partial output survives an
// error on open; a write error mid-file is reported to the caller and
// treated as fatal.
func WriteFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	w := bufio.NewWriter(f)
	for _, r := range records {
		if _, err := w.WriteString(string(r)); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
