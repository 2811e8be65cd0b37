// Package simulation computes hypothetical layouts in which new tables
// are inserted after existing ones.  Results are advisory and feed
// reports only; the live collection is never touched.
package simulation

import (
	"errors"
	"sort"
	"strconv"
	"strings"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// Placeholder row values for simulated tables.
const (
	PlaceholderName  = "Reserved (Simulated)"
	PlaceholderGroup = "SIMULATION"
	PlaceholderMenu  = "Reserve"
)

// FrontAnchor inserts new tables before the first existing table.
const FrontAnchor = 0

// ErrNoAnchors is returned by ParseAnchors when the input names no table.
var ErrNoAnchors = errors.New("no insertion anchors given")

// Result is the outcome of one simulation.
type Result struct {
	// Ordering is the row-major linearization of the simulated layout.
	Ordering []int `json:"ordering"`
	// NewIDs are the minted table numbers, in anchor order.
	NewIDs []int `json:"new_ids"`
	// Rows is the input collection plus one placeholder row per new table.
	Rows model.Collection `json:"-"`
}

// Simulate inserts one new table after each anchor.  New ids start at
// max(existing)+1 and follow anchor order, so a repeated anchor yields
// several tables at the same point.  Anchors matching no existing table
// have their tables appended at the end, grouped by the anchor's first
// appearance.
func Simulate(c model.Collection, anchors []int) Result {
	base := c.MaxTableNumber()
	if base < 0 {
		base = 0
	}

	newIDs := make([]int, len(anchors))
	byAnchor := make(map[int][]int)
	var anchorOrder []int
	for i, a := range anchors {
		id := base + 1 + i
		newIDs[i] = id
		if _, seen := byAnchor[a]; !seen {
			anchorOrder = append(anchorOrder, a)
		}
		byAnchor[a] = append(byAnchor[a], id)
	}

	existing := existingTables(c)
	ordering := make([]int, 0, len(existing)+len(newIDs))
	if len(existing) == 0 {
		ordering = append(ordering, newIDs...)
	} else {
		ordering = append(ordering, byAnchor[FrontAnchor]...)
		placed := map[int]bool{FrontAnchor: true}
		for _, t := range existing {
			ordering = append(ordering, t)
			ordering = append(ordering, byAnchor[t]...)
			placed[t] = true
		}
		for _, a := range anchorOrder {
			if !placed[a] {
				ordering = append(ordering, byAnchor[a]...)
			}
		}
	}

	rows := make(model.Collection, 0, len(c)+len(newIDs))
	rows = append(rows, c...)
	for _, id := range newIDs {
		rows = append(rows, model.GuestRow{
			TableNumber: id,
			Seat:        1,
			Name:        PlaceholderName,
			Menu:        PlaceholderMenu,
			GroupName:   PlaceholderGroup,
		})
	}

	return Result{Ordering: ordering, NewIDs: newIDs, Rows: rows}
}

// existingTables returns the distinct nonzero table numbers, ascending.
func existingTables(c model.Collection) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, r := range c {
		if r.TableNumber == 0 {
			continue
		}
		if _, ok := seen[r.TableNumber]; ok {
			continue
		}
		seen[r.TableNumber] = struct{}{}
		out = append(out, r.TableNumber)
	}
	sort.Ints(out)
	return out
}

// ParseAnchors reads a comma separated anchor list such as "7, 13".
// Tokens that are not plain non-negative integers are skipped.
func ParseAnchors(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" || strings.TrimLeft(tok, "0123456789") != "" {
			continue
		}
		n, err := strconv.Atoi(tok)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	if len(out) == 0 {
		return nil, ErrNoAnchors
	}
	return out, nil
}
