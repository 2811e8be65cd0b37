package repository

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/seating"
)

// XLSXGuestStore keeps the guest list on one worksheet of a workbook.
// The first row is the header.  Saving rewrites the workbook with only
// that sheet.
type XLSXGuestStore struct {
	path  string
	sheet string
}

// NewXLSXGuestStore binds a store to a workbook path and sheet name.
func NewXLSXGuestStore(path, sheet string) *XLSXGuestStore {
	if sheet == "" {
		sheet = "Guests"
	}
	return &XLSXGuestStore{path: path, sheet: sheet}
}

func (s *XLSXGuestStore) source() string { return s.path + "#" + s.sheet }

// Load reads the sheet.  A missing workbook or sheet is
// seating.ErrStoreUnavailable.
func (s *XLSXGuestStore) Load(ctx context.Context) (model.Collection, error) {
	if err := ctx.Err(); err != nil {
		return nil, seating.Unavailable(s.source(), err)
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, seating.Unavailable(s.source(), err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(s.sheet); err != nil || idx < 0 {
		return nil, seating.Unavailable(s.source(), fmt.Errorf("sheet %q not found", s.sheet))
	}
	rows, err := f.GetRows(s.sheet)
	if err != nil {
		return nil, seating.Unavailable(s.source(), err)
	}
	out := model.Collection{}
	if len(rows) == 0 {
		return out, nil
	}
	dec := newRowDecoder(rows[0])
	for i, rec := range rows[1:] {
		if blank(rec) {
			continue
		}
		out = append(out, dec.decode(rec, i+2))
	}
	dec.report(s.source())
	return out, nil
}

// Save writes c to a fresh workbook and replaces the file.
func (s *XLSXGuestStore) Save(ctx context.Context, c model.Collection) error {
	if err := ctx.Err(); err != nil {
		return seating.WriteFailed(s.source(), err)
	}
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.sheet); err != nil {
		return seating.WriteFailed(s.source(), err)
	}
	header := make([]interface{}, len(model.Columns))
	for i, col := range model.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(s.sheet, "A1", &header); err != nil {
		return seating.WriteFailed(s.source(), err)
	}
	for i, r := range c {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return seating.WriteFailed(s.source(), err)
		}
		vals := []interface{}{r.TableNumber, r.Seat, r.Name, r.Menu, r.GroupID, r.GroupName}
		if err := f.SetSheetRow(s.sheet, cell, &vals); err != nil {
			return seating.WriteFailed(s.source(), err)
		}
	}
	if err := writeAtomic(s.path, func(w io.Writer) error { return f.Write(w) }); err != nil {
		return seating.WriteFailed(s.source(), err)
	}
	return nil
}

