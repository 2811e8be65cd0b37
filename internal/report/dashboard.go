package report

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/banquet-seating/internal/model"
)

// UnknownMenu buckets rows with a blank menu.
const UnknownMenu = "Unknown"

var hundred = decimal.NewFromInt(100)

// MenuShare is one entry of the menu distribution.
type MenuShare struct {
	Menu       string          `json:"menu"`
	Count      int             `json:"count"`
	Percentage decimal.Decimal `json:"percentage"`
}

// Dashboard holds the headline figures of the event.
type Dashboard struct {
	TotalGuests int             `json:"total_guests"`
	TablesInUse int             `json:"tables_in_use"`
	Target      int             `json:"target"`
	TargetDelta int             `json:"target_delta"`
	Performance decimal.Decimal `json:"performance_pct"`
	Menus       []MenuShare     `json:"menus"`
}

// percent returns part/whole*100 rounded to one decimal place, or zero
// when whole is not positive.
func percent(part, whole int) decimal.Decimal {
	if whole <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(int64(part)).
		Mul(hundred).
		Div(decimal.NewFromInt(int64(whole))).
		Round(1)
}

// BuildDashboard computes guest totals against target and the menu
// distribution.  Menus are listed by descending count, ties by label.
func BuildDashboard(c model.Collection, target int) Dashboard {
	d := Dashboard{
		TotalGuests: len(c),
		Target:      target,
		TargetDelta: len(c) - target,
		Performance: percent(len(c), target),
	}

	tables := make(map[int]struct{})
	counts := make(map[string]int)
	for _, r := range c {
		if r.TableNumber > 0 {
			tables[r.TableNumber] = struct{}{}
		}
		menu := strings.TrimSpace(r.Menu)
		if menu == "" {
			menu = UnknownMenu
		}
		counts[menu]++
	}
	d.TablesInUse = len(tables)

	for menu, n := range counts {
		d.Menus = append(d.Menus, MenuShare{Menu: menu, Count: n, Percentage: percent(n, len(c))})
	}
	sort.Slice(d.Menus, func(i, j int) bool {
		if d.Menus[i].Count != d.Menus[j].Count {
			return d.Menus[i].Count > d.Menus[j].Count
		}
		return d.Menus[i].Menu < d.Menus[j].Menu
	})
	return d
}
