package model

import "strings"

// GuestRow is one seat assignment at the banquet.  Rows are grouped
// into tables by TableNumber, which is the data identifier of the
// table under the active numbering scheme.  All rows sharing a
// TableNumber are expected to share GroupName; when they do not, the
// first row wins for display and reporting.
//
// Fields:
//  TableNumber – data table identifier (0 means unassigned).
//  Seat        – position within the table; not unique, not contiguous.
//  Name        – guest name, may be empty.
//  Menu        – menu category label (Daging, Ayam, Ikan, Vegetarian, Reserve...).
//  GroupID     – stored group identifier, 0 when unset.
//  GroupName   – group/cluster label shared by the table.
type GuestRow struct {
    TableNumber int    `json:"table_number"` // guest_list.table_number
    Seat        int    `json:"seat"`         // guest_list.seat
    Name        string `json:"name"`         // guest_list.name
    Menu        string `json:"menu"`         // guest_list.menu
    GroupID     int    `json:"gp_id"`        // guest_list.gp_id
    GroupName   string `json:"gp_name"`      // guest_list.gp_name
}

// Columns is the fixed column order used by every tabular guest store.
var Columns = []string{"table_number", "seat", "name", "menu", "gp_id", "gp_name"}

// Collection is the unordered multiset of guest rows.  It is loaded
// and persisted as a whole; duplicates of (table, seat) are allowed.
type Collection []GuestRow

// Clone returns an independent copy of the collection.
func (c Collection) Clone() Collection {
    if c == nil {
        return nil
    }
    out := make(Collection, len(c))
    copy(out, c)
    return out
}

// Table returns the rows tagged with the given data identifier, in
// collection order.
func (c Collection) Table(id int) []GuestRow {
    var out []GuestRow
    for _, r := range c {
        if r.TableNumber == id {
            out = append(out, r)
        }
    }
    return out
}

// MaxTableNumber returns the largest table number present, or 0 for
// an empty collection.
func (c Collection) MaxTableNumber() int {
    if len(c) == 0 {
        return 0
    }
    m := c[0].TableNumber
    for _, r := range c[1:] {
        if r.TableNumber > m {
            m = r.TableNumber
        }
    }
    return m
}

// lower returns the lower-cased, trimmed form of a free-text field.
func lower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// LowerName, LowerGroup and LowerMenu expose normalized text fields
// for keyword matching.
func (r GuestRow) LowerName() string  { return lower(r.Name) }
func (r GuestRow) LowerGroup() string { return lower(r.GroupName) }
func (r GuestRow) LowerMenu() string  { return lower(r.Menu) }
