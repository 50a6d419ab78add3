// Package csvio reads exchange CSV exports into header-indexed tables and
// writes CSV artifacts. Historical exports are GBK-encoded with Chinese
// column headers, so reads optionally go through a GBK decoder.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

// Table is one CSV file in memory: a header index plus the data rows.
type Table struct {
	path string
	cols map[string]int
	rows [][]string
}

// ReadFile loads a whole CSV file. The first record is the header.
func ReadFile(path string, gbk bool) (t *Table, err error) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer f.Close()

	var r io.Reader = f
	if gbk {
		r = transform.NewReader(f, simplifiedchinese.GBK.NewDecoder())
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return
	}

	t = &Table{
		path: path,
		cols: map[string]int{},
	}
	if len(records) == 0 {
		return
	}

	for i, name := range records[0] {
		t.cols[strings.TrimSpace(name)] = i
	}
	t.rows = records[1:]

	return
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the data rows.
func (t *Table) Rows() [][]string {
	return t.rows
}

// Col returns the index of a named column.
func (t *Table) Col(name string) (idx int, err error) {
	idx, ok := t.cols[name]
	if !ok {
		err = fmt.Errorf("missing column %q in %s", name, t.path)
	}
	return
}

// Cell returns one field, tolerating short rows.
func (t *Table) Cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// ParseInt parses an integer field that may be printed in float form
// ("93001230.0"), truncating any fractional part.
func ParseInt(s string) (v int64, err error) {
	s = strings.TrimSpace(s)
	v, err = strconv.ParseInt(s, 10, 64)
	if err == nil {
		return
	}

	f, ferr := strconv.ParseFloat(s, 64)
	if ferr != nil {
		return 0, err
	}
	return int64(f), nil
}

// WriteFile writes header and rows as one CSV file, creating the directory
// when needed.
func WriteFile(path string, header []string, rows [][]string) (err error) {
	err = os.MkdirAll(filepath.Dir(path), 0755)
	if err != nil {
		return
	}

	f, err := os.Create(path)
	if err != nil {
		return
	}
	defer f.Close()

	w := csv.NewWriter(f)
	err = w.Write(header)
	if err != nil {
		return
	}
	err = w.WriteAll(rows)
	if err != nil {
		return
	}

	w.Flush()
	err = w.Error()

	return
}
