package report

import (
	"sort"
	"strings"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// NamedGuest is one line of the A-Z guest list.
type NamedGuest struct {
	No          int    `json:"no"`
	Name        string `json:"name"`
	TableNumber int    `json:"table_number"`
	GroupName   string `json:"group_name"`
}

// GuestsByName lists every row sorted case-insensitively by name.
func GuestsByName(c model.Collection) []NamedGuest {
	rows := c.Clone()
	sort.SliceStable(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})
	out := make([]NamedGuest, len(rows))
	for i, r := range rows {
		out[i] = NamedGuest{No: i + 1, Name: r.Name, TableNumber: r.TableNumber, GroupName: r.GroupName}
	}
	return out
}

// SeatedGuest is one line inside a table block.
type SeatedGuest struct {
	No   int    `json:"no"`
	Seat int    `json:"seat"`
	Name string `json:"name"`
	Menu string `json:"menu"`
}

// TableBlock is the guest list of one table.
type TableBlock struct {
	TableNumber int           `json:"table_number"`
	GroupName   string        `json:"group_name"`
	Guests      []SeatedGuest `json:"guests"`
}

// GuestsByTable groups rows into blocks for every nonzero table in
// ascending order, each sorted by seat.
func GuestsByTable(c model.Collection) []TableBlock {
	byTable := make(map[int][]model.GuestRow)
	for _, r := range c {
		if r.TableNumber == 0 {
			continue
		}
		byTable[r.TableNumber] = append(byTable[r.TableNumber], r)
	}
	ids := make([]int, 0, len(byTable))
	for id := range byTable {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	out := make([]TableBlock, 0, len(ids))
	for _, id := range ids {
		rows := byTable[id]
		// group comes from the first stored row, before sorting by seat
		block := TableBlock{TableNumber: id, GroupName: rows[0].GroupName}
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Seat < rows[j].Seat })
		for i, r := range rows {
			block.Guests = append(block.Guests, SeatedGuest{No: i + 1, Seat: r.Seat, Name: r.Name, Menu: r.Menu})
		}
		out = append(out, block)
	}
	return out
}
