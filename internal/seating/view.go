package seating

import (
	"sort"
	"strings"

	"github.com/iliyamo/banquet-seating/internal/identity"
	"github.com/iliyamo/banquet-seating/internal/model"
)

// UnknownGroup labels occupied tables whose first row has no group.
const UnknownGroup = "Unknown"

// Cell is one grid slot as handed to the rendering surface.  ID is the
// display identifier; DataID is what the rows are stored under.
type Cell struct {
	ID       int    `json:"id"`
	DataID   int    `json:"data_id"`
	Occupied bool   `json:"occupied"`
	Group    string `json:"group"`
	Count    int    `json:"count"`
}

type tableInfo struct {
	group string
	count int
}

// BuildCells produces the rows*cols cells of the grid in row-major
// order.
func BuildCells(res *identity.Resolver, c model.Collection) []Cell {
	tables := make(map[int]*tableInfo)
	for _, r := range c {
		t, ok := tables[r.TableNumber]
		if !ok {
			g := strings.TrimSpace(r.GroupName)
			if g == "" {
				g = UnknownGroup
			}
			t = &tableInfo{group: g}
			tables[r.TableNumber] = t
		}
		t.count++
	}

	slots := res.Slots()
	cells := make([]Cell, 0, len(slots))
	for _, s := range slots {
		cell := Cell{ID: s.DisplayID, DataID: s.DataID}
		if t, ok := tables[s.DataID]; ok {
			cell.Occupied = true
			cell.Group = t.group
			cell.Count = t.count
		}
		cells = append(cells, cell)
	}
	return cells
}

// GuestFilter narrows the guest list.  A nil Table matches every table;
// Search is a case-insensitive substring of the guest name.
type GuestFilter struct {
	Table  *int
	Search string
}

// FilterGuests returns the matching rows sorted by table then seat.
// Rows that compare equal keep their collection order.
func FilterGuests(c model.Collection, f GuestFilter) []model.GuestRow {
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]model.GuestRow, 0, len(c))
	for _, r := range c {
		if f.Table != nil && r.TableNumber != *f.Table {
			continue
		}
		if needle != "" && !strings.Contains(r.LowerName(), needle) {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TableNumber != out[j].TableNumber {
			return out[i].TableNumber < out[j].TableNumber
		}
		return out[i].Seat < out[j].Seat
	})
	return out
}

// TableNumbers lists the distinct table numbers in ascending order.
func TableNumbers(c model.Collection) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range c {
		if _, ok := seen[r.TableNumber]; ok {
			continue
		}
		seen[r.TableNumber] = struct{}{}
		out = append(out, r.TableNumber)
	}
	sort.Ints(out)
	return out
}
