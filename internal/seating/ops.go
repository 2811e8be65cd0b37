// Package seating holds the in-memory operations over the guest
// collection.  Every operation works on data identifiers, returns a new
// collection and leaves its input untouched; persisting the result is
// the caller's job.
package seating

import (
	"github.com/iliyamo/banquet-seating/internal/model"
)

// swapSentinel is the temporary table number used while relabelling.
// Table numbers are never negative in stored data.
const swapSentinel = -999

// Swap exchanges the occupants of tables a and b.  Every row tagged a
// is retagged b and vice versa; no other field changes.  Either side
// may be empty, and a == b returns an unchanged copy.
func Swap(c model.Collection, a, b int) model.Collection {
	out := c.Clone()
	if a == b {
		return out
	}
	tmp := sentinelFor(out)
	relabel(out, a, tmp)
	relabel(out, b, a)
	relabel(out, tmp, b)
	return out
}

// sentinelFor picks a table number that no row carries.
func sentinelFor(c model.Collection) int {
	used := false
	min := 0
	for _, r := range c {
		if r.TableNumber == swapSentinel {
			used = true
		}
		if r.TableNumber < min {
			min = r.TableNumber
		}
	}
	if !used && min > swapSentinel {
		return swapSentinel
	}
	if min > swapSentinel {
		min = swapSentinel
	}
	return min - 1
}

func relabel(c model.Collection, from, to int) {
	for i := range c {
		if c[i].TableNumber == from {
			c[i].TableNumber = to
		}
	}
}

// ReplaceTable drops every row of table id and appends rows in their
// place, tagged with id and group.  GroupID is reset to 0.  An empty
// rows vacates the table.
func ReplaceTable(c model.Collection, id int, group string, rows []model.GuestRow) model.Collection {
	out := make(model.Collection, 0, len(c)+len(rows))
	for _, r := range c {
		if r.TableNumber != id {
			out = append(out, r)
		}
	}
	for _, r := range rows {
		r.TableNumber = id
		r.GroupName = group
		r.GroupID = 0
		out = append(out, r)
	}
	return out
}

// RenumberAll rewrites table numbers through idMap.  Ids absent from
// the map keep their value; the map is applied once per row, so chains
// such as {2:3, 3:2} swap rather than collapse.
func RenumberAll(c model.Collection, idMap map[int]int) model.Collection {
	out := c.Clone()
	for i := range out {
		if to, ok := idMap[out[i].TableNumber]; ok {
			out[i].TableNumber = to
		}
	}
	return out
}

// GroupName returns the group label of table id, read from its first
// row.  ok is false when the table has no rows.
func GroupName(c model.Collection, id int) (name string, ok bool) {
	for _, r := range c {
		if r.TableNumber == id {
			return r.GroupName, true
		}
	}
	return "", false
}
