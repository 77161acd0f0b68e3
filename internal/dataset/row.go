package dataset

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// IndexField is the reserved key the backend uses for a row's position in the
// unfiltered dataset. It is never treated as a column.
const IndexField = "_index"

// Row is one record of a page. Fields keep the backend's column order.
type Row struct {
	Index    int
	HasIndex bool
	Fields   []Entry
}

// RowFromValue splits the reserved index out of a decoded record.
func RowFromValue(v Value) (Row, error) {
	if v.Kind() != KindMapping {
		return Row{}, fmt.Errorf("row must be an object, got %s", v.Kind())
	}
	row := Row{Fields: make([]Entry, 0, len(v.Entries()))}
	for _, e := range v.Entries() {
		if e.Key != IndexField {
			row.Fields = append(row.Fields, e)
			continue
		}
		if e.Value.Kind() != KindNumber {
			continue
		}
		idx, err := strconv.Atoi(e.Value.Str())
		if err != nil {
			return Row{}, fmt.Errorf("invalid %s %q: %w", IndexField, e.Value.Str(), err)
		}
		row.Index = idx
		row.HasIndex = true
	}
	return row, nil
}

// Number is the row number shown to users: the backend index when present,
// otherwise its position in the current page.
func (r Row) Number(pageStart, offset int) int {
	if r.HasIndex {
		return r.Index
	}
	return pageStart + offset
}

// Get returns the value of a column.
func (r Row) Get(column string) (Value, bool) {
	return Mapping(r.Fields...).Get(column)
}

// Value re-assembles the record, with the index as the last key.
func (r Row) Value() Value {
	entries := make([]Entry, 0, len(r.Fields)+1)
	entries = append(entries, r.Fields...)
	if r.HasIndex {
		entries = append(entries, Entry{Key: IndexField, Value: Int(int64(r.Index))})
	}
	return Mapping(entries...)
}

func (r Row) MarshalJSON() ([]byte, error) {
	return []byte(r.Value().JSON()), nil
}

func (r *Row) UnmarshalJSON(data []byte) error {
	v, err := ParseValue(bytes.TrimSpace(data))
	if err != nil {
		return err
	}
	row, err := RowFromValue(v)
	if err != nil {
		return err
	}
	*r = row
	return nil
}

func (r Row) MarshalYAML() (any, error) {
	return r.Value().MarshalYAML()
}

var _ yaml.Marshaler = Row{}
