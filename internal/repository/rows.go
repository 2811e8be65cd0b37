package repository

import (
	"log"
	"strconv"
	"strings"

	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

// rowDecoder maps header names to column positions so stores accept
// files with extra or reordered columns.  Missing columns decode as
// zero values.
type rowDecoder struct {
	idx       map[string]int
	malformed []seating.MalformedValue
}

func newRowDecoder(header []string) *rowDecoder {
	d := &rowDecoder{idx: make(map[string]int, len(header))}
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := d.idx[key]; !dup {
			d.idx[key] = i
		}
	}
	return d
}

func (d *rowDecoder) field(rec []string, col string) string {
	i, ok := d.idx[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// number parses an integer column.  Decimal values are truncated; any
// other non-empty value is recorded as malformed and read as 0.
func (d *rowDecoder) number(rec []string, col string, line int) int {
	s := d.field(rec, col)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= -1<<63 && f < 1<<63 {
		// NaN and out-of-range values fail the bounds and count as malformed
		return int(f)
	}
	d.malformed = append(d.malformed, seating.MalformedValue{Line: line, Column: col, Value: s})
	return 0
}

func (d *rowDecoder) decode(rec []string, line int) model.GuestRow {
	return model.GuestRow{
		TableNumber: d.number(rec, "table_number", line),
		Seat:        d.number(rec, "seat", line),
		Name:        d.field(rec, "name"),
		Menu:        d.field(rec, "menu"),
		GroupID:     d.number(rec, "gp_id", line),
		GroupName:   d.field(rec, "gp_name"),
	}
}

// report logs the coerced values of one load.
func (d *rowDecoder) report(source string) {
	if len(d.malformed) == 0 {
		return
	}
	log.Printf("store: %s: coerced %d malformed values to 0 (first: %v)", source, len(d.malformed), d.malformed[0])
}

// blank reports whether every field of rec is empty.
func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func encodeRow(r model.GuestRow) []string {
	return []string{
		strconv.Itoa(r.TableNumber),
		strconv.Itoa(r.Seat),
		r.Name,
		r.Menu,
		strconv.Itoa(r.GroupID),
		r.GroupName,
	}
}
