// Package report projects a guest collection into the aggregates the
// report writers consume, and writes those aggregates as PDF, CSV, XLSX
// and HTML.
package report

import (
	"sort"
	"strings"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// Keywords that flag a row as reserved.  Vacant applies to the name and
// group only.
var (
	reservedKeywords = []string{"simpanan", "reserve"}
	vacantKeyword    = "vacant"
)

// Menu category tokens, matched as lower-case substrings of the menu.
// "vege" also covers "vegetarian"; a row is counted once.
const (
	menuDaging     = "daging"
	menuAyam       = "ayam"
	menuIkan       = "ikan"
	menuVegetarian = "vege"
)

// TableSummary is one row of the table summary report.  The totals row
// uses TableNumber 0 and an empty GroupName.
type TableSummary struct {
	TableNumber int    `json:"table_number"`
	GroupName   string `json:"group_name"`
	Total       int    `json:"total"`
	Reserved    int    `json:"reserved"`
	Daging      int    `json:"daging"`
	Ayam        int    `json:"ayam"`
	Ikan        int    `json:"ikan"`
	Vegetarian  int    `json:"vegetarian"`
	Adjusted    int    `json:"adjusted_total"`
}

// Summary is the per-table projection plus its totals row.
type Summary struct {
	Tables []TableSummary `json:"tables"`
	Totals TableSummary   `json:"totals"`
}

// IsReserved reports whether a row is held rather than attended.
func IsReserved(r model.GuestRow) bool {
	name, group, menu := r.LowerName(), r.LowerGroup(), r.LowerMenu()
	for _, kw := range reservedKeywords {
		if strings.Contains(name, kw) || strings.Contains(group, kw) || strings.Contains(menu, kw) {
			return true
		}
	}
	return strings.Contains(name, vacantKeyword) || strings.Contains(group, vacantKeyword)
}

func (s *TableSummary) add(r model.GuestRow) {
	s.Total++
	if IsReserved(r) {
		s.Reserved++
	}
	menu := r.LowerMenu()
	if strings.Contains(menu, menuDaging) {
		s.Daging++
	}
	if strings.Contains(menu, menuAyam) {
		s.Ayam++
	}
	if strings.Contains(menu, menuIkan) {
		s.Ikan++
	}
	if strings.Contains(menu, menuVegetarian) {
		s.Vegetarian++
	}
	s.Adjusted = s.Total - s.Reserved
}

func (s *TableSummary) accumulate(o TableSummary) {
	s.Total += o.Total
	s.Reserved += o.Reserved
	s.Daging += o.Daging
	s.Ayam += o.Ayam
	s.Ikan += o.Ikan
	s.Vegetarian += o.Vegetarian
	s.Adjusted += o.Adjusted
}

// Project aggregates c per table in the given ordering.  A nil ordering
// means every nonzero table in ascending order.  Table 0 and repeated
// ids are skipped; ids without rows yield a zero row.
func Project(c model.Collection, ordering []int) Summary {
	byTable := make(map[int]*TableSummary)
	for _, r := range c {
		if r.TableNumber == 0 {
			continue
		}
		s, ok := byTable[r.TableNumber]
		if !ok {
			s = &TableSummary{TableNumber: r.TableNumber, GroupName: r.GroupName}
			byTable[r.TableNumber] = s
		}
		s.add(r)
	}

	if ordering == nil {
		ordering = make([]int, 0, len(byTable))
		for id := range byTable {
			ordering = append(ordering, id)
		}
		sort.Ints(ordering)
	}

	var out Summary
	seen := make(map[int]bool, len(ordering))
	for _, id := range ordering {
		if id == 0 || seen[id] {
			continue
		}
		seen[id] = true
		row := TableSummary{TableNumber: id}
		if s, ok := byTable[id]; ok {
			row = *s
		}
		out.Tables = append(out.Tables, row)
		out.Totals.accumulate(row)
	}
	return out
}
