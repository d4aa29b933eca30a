package ingest

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

// SkipBOM drops a leading UTF-8 byte order mark.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	peeked, err := br.Peek(3)
	if err != nil {
		return br
	}
	if bytes.Equal(peeked, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
	}
	return br
}

// lookupEncoding maps a configured encoding name to a decoder. UTF-8 and the
// empty name return nil.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return nil, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "shift_jis", "shift-jis", "sjis":
		return japanese.ShiftJIS, nil
	default:
		return nil, fmt.Errorf("unsupported input encoding %q", name)
	}
}

// ReadCSV reads a CSV export. The first record is the header. Rows may have
// fewer or more fields than the header.
func ReadCSV(name string, r io.Reader, enc string) (*Table, error) {
	decoder, err := lookupEncoding(enc)
	if err != nil {
		return nil, err
	}

	src := SkipBOM(r)
	if decoder != nil {
		src = transform.NewReader(src, decoder.NewDecoder())
	}

	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("%s table is empty", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV header: %w", name, err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s CSV record: %w", name, err)
		}
		if isBlank(record) {
			continue
		}
		rows = append(rows, record)
	}

	return NewTable(name, header, rows), nil
}

// ReadXLSX reads the first sheet of a workbook. The first row is the header.
func ReadXLSX(name string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s xlsx: %w", name, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s xlsx has no sheets", name)
	}
	sheet := sheets[0]

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows from sheet %s: %w", sheet, err)
	}
	defer rows.Close()

	var header []string
	var records [][]string
	for rows.Next() {
		record, err := rows.Columns()
		if err != nil {
			return nil, fmt.Errorf("failed to read row from %s: %w", name, err)
		}
		if header == nil {
			header = record
			continue
		}
		if isBlank(record) {
			continue
		}
		records = append(records, record)
	}
	if err := rows.Error(); err != nil {
		return nil, fmt.Errorf("error iterating rows in %s: %w", name, err)
	}
	if header == nil {
		return nil, fmt.Errorf("%s table is empty", name)
	}

	return NewTable(name, header, records), nil
}

// ReadTable dispatches on the file extension: .xlsx/.xlsm go through
// excelize, everything else is read as CSV.
func ReadTable(name, filename string, r io.Reader, enc string) (*Table, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ReadXLSX(name, r)
	default:
		return ReadCSV(name, r, enc)
	}
}

func isBlank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
