package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// SummaryHeader labels the table summary columns in every format.
var SummaryHeader = []string{
	"Table Number", "Table Name", "Total Guests", "Reserved",
	"Daging", "Ayam", "Ikan", "Vegetarian", "Adjusted Total",
}

// WriteSummaryCSV writes the table summary followed by the totals row.
func WriteSummaryCSV(w io.Writer, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(SummaryHeader); err != nil {
		return err
	}
	for _, t := range s.Tables {
		if err := cw.Write(summaryCells(t, strconv.Itoa(t.TableNumber))); err != nil {
			return err
		}
	}
	totals := s.Totals
	totals.GroupName = ""
	if err := cw.Write(summaryCells(totals, "Total")); err != nil {
		return err
	}
	cw.Flush()
	return cw.Error()
}

// WriteGuestsCSV writes rows in the stored column order.
func WriteGuestsCSV(w io.Writer, rows []model.GuestRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(model.Columns); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			strconv.Itoa(r.TableNumber),
			strconv.Itoa(r.Seat),
			r.Name,
			r.Menu,
			strconv.Itoa(r.GroupID),
			r.GroupName,
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGuestsByNameCSV writes the A-Z guest list.
func WriteGuestsByNameCSV(w io.Writer, guests []NamedGuest) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"No", "Name", "Table", "Group"}); err != nil {
		return err
	}
	for _, g := range guests {
		if err := cw.Write([]string{strconv.Itoa(g.No), g.Name, strconv.Itoa(g.TableNumber), g.GroupName}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
