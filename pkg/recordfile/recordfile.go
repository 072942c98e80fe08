// Package recordfile reads and writes the line-oriented, comma-separated
// record files the store keeps its catalog, customers and ledgers in.
//
// Every line is decoded on its own so a torn or malformed line never affects
// its neighbours. Fields are CSV-quoted on write when they contain a comma or
// quote; carriage returns and newlines are replaced by spaces so a record
// always stays on one line.
package recordfile

import (
	"bufio"
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/smallbiznis/retailpos/pkg/apperror"
)

const maxLineBytes = 1 << 20

var lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

// Stats describes one scan pass.
type Stats struct {
	Records int
	Skipped int
}

// Scan calls fn for every non-blank line of path, in file order. Lines that
// cannot be decoded, lines longer than maxLineBytes, and lines for which fn
// returns an error are counted as skipped. A missing file scans as empty.
func Scan(ctx context.Context, path string, fn func(fields []string) error) (Stats, error) {
	var stats Stats

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return stats, nil
		}
		return stats, apperror.IO("open", path, err)
	}
	defer f.Close()

	reader := bufio.NewReaderSize(f, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		raw, tooLong, err := readLine(reader)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats, apperror.IO("read", path, err)
		}
		if tooLong {
			stats.Skipped++
			continue
		}
		line := strings.TrimRight(string(raw), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields, err := DecodeLine(line)
		if err != nil {
			stats.Skipped++
			continue
		}
		if err := fn(fields); err != nil {
			stats.Skipped++
			continue
		}
		stats.Records++
	}
	return stats, nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLineBytes is drained and reported as tooLong.
func readLine(r *bufio.Reader) (line []byte, tooLong bool, err error) {
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if !tooLong {
			if len(line)+len(chunk) > maxLineBytes {
				tooLong = true
				line = nil
			} else {
				line = append(line, chunk...)
			}
		}
		if !isPrefix {
			return line, tooLong, nil
		}
	}
}

// DecodeLine splits one record line into trimmed fields. Quotes inside an
// unquoted field are kept literally, so rows written without quoting
// (12" Pizza) still decode.
func DecodeLine(line string) ([]string, error) {
	r := csv.NewReader(strings.NewReader(line))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	r.ReuseRecord = false
	fields, err := r.Read()
	if err != nil {
		return nil, err
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields, nil
}

// Encode renders records as lines.
func Encode(records [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, record := range records {
		clean := make([]string, len(record))
		for i, field := range record {
			clean[i] = lineBreaks.Replace(field)
		}
		if err := w.Write(clean); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Append opens path for appending, writes records and closes it. The parent
// directory is created when missing.
func Append(path string, records [][]string) error {
	if len(records) == 0 {
		return nil
	}
	data, err := Encode(records)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "encode records", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return apperror.IO("open", path, err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return apperror.IO("append", path, err)
	}
	if err := f.Close(); err != nil {
		return apperror.IO("close", path, err)
	}
	return nil
}

// Rewrite atomically replaces path with records: readers see either the old
// or the new content, never a torn file.
func Rewrite(path string, records [][]string) error {
	data, err := Encode(records)
	if err != nil {
		return apperror.Wrap(apperror.KindInternal, "encode records", err)
	}
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return apperror.IO("write", path, err)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperror.IO("mkdir", dir, err)
	}
	return nil
}
