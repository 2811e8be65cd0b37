package report

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/iliyamo/banquet-seating/internal/simulation"
)

// Meta carries the header fields shared by every artifact.
type Meta struct {
	Title       string
	GeneratedAt time.Time
}

func (m Meta) stamp() string {
	return m.GeneratedAt.Format("02-01-2006 15:04")
}

const (
	lineHeight = 7.0
	pageMargin = 12.0
)

// pdfDoc wraps fpdf with the cp1252 translator so guest names with
// accents render.
type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

func newPDF(orientation string, meta Meta, heading string) *pdfDoc {
	p := fpdf.New(orientation, "mm", "A4", "")
	p.SetMargins(pageMargin, pageMargin, pageMargin)
	p.SetAutoPageBreak(true, pageMargin)
	p.SetTitle(heading, true)
	if !meta.GeneratedAt.IsZero() {
		p.SetCreationDate(meta.GeneratedAt)
	}
	d := &pdfDoc{Fpdf: p, tr: p.UnicodeTranslatorFromDescriptor("")}
	d.AddPage()
	if meta.Title != "" {
		d.SetFont("Helvetica", "B", 18)
		d.CellFormat(0, 10, d.tr(meta.Title), "", 1, "L", false, 0, "")
	}
	d.SetFont("Helvetica", "B", 14)
	d.CellFormat(0, 8, d.tr(heading), "", 1, "L", false, 0, "")
	d.SetFont("Helvetica", "", 10)
	d.CellFormat(0, 6, "Generated: "+meta.stamp(), "", 1, "L", false, 0, "")
	d.Ln(4)
	return d
}

// row writes one table row.  header rows are shaded and bold.
func (d *pdfDoc) row(widths []float64, cells []string, aligns string, header bool) {
	style := ""
	if header {
		style = "B"
		d.SetFillColor(211, 211, 211)
	}
	d.SetFont("Helvetica", style, 9)
	for i, w := range widths {
		align := "L"
		if i < len(aligns) {
			align = aligns[i : i+1]
		}
		d.CellFormat(w, lineHeight, d.tr(cells[i]), "1", 0, align, header, 0, "")
	}
	d.Ln(-1)
}

func (d *pdfDoc) finish(w io.Writer) error {
	if err := d.Error(); err != nil {
		return err
	}
	return d.Output(w)
}

var summaryWidths = []float64{18, 52, 16, 18, 16, 16, 16, 20, 16}

func summaryCells(s TableSummary, label string) []string {
	return []string{
		label, s.GroupName,
		strconv.Itoa(s.Total), strconv.Itoa(s.Reserved),
		strconv.Itoa(s.Daging), strconv.Itoa(s.Ayam), strconv.Itoa(s.Ikan), strconv.Itoa(s.Vegetarian),
		strconv.Itoa(s.Adjusted),
	}
}

// WriteSummaryPDF writes the table summary with its totals row.
func WriteSummaryPDF(w io.Writer, s Summary, meta Meta) error {
	d := newPDF("P", meta, "Tables Summary")
	d.row(summaryWidths, SummaryHeader, "CLCCCCCCC", true)
	for _, t := range s.Tables {
		d.row(summaryWidths, summaryCells(t, strconv.Itoa(t.TableNumber)), "CLCCCCCCC", false)
	}
	totals := s.Totals
	totals.GroupName = ""
	d.row(summaryWidths, summaryCells(totals, "Total"), "CLCCCCCCC", true)
	return d.finish(w)
}

// WriteGuestsByNamePDF writes the A-Z guest list.
func WriteGuestsByNamePDF(w io.Writer, guests []NamedGuest, meta Meta) error {
	d := newPDF("P", meta, "Guest List (By Name)")
	widths := []float64{12, 90, 20, 64}
	d.row(widths, []string{"No", "Name", "Table", "Group"}, "CLCL", true)
	for _, g := range guests {
		d.row(widths, []string{strconv.Itoa(g.No), g.Name, strconv.Itoa(g.TableNumber), g.GroupName}, "CLCL", false)
	}
	return d.finish(w)
}

// WriteGuestsByTablePDF writes one block per table.  A block that would
// straddle a page break starts on a new page.
func WriteGuestsByTablePDF(w io.Writer, blocks []TableBlock, meta Meta) error {
	d := newPDF("P", meta, "Guest List (By Table)")
	widths := []float64{14, 130, 42}
	_, pageH := d.GetPageSize()
	for _, b := range blocks {
		need := float64(len(b.Guests)+2)*lineHeight + 8
		if d.GetY()+need > pageH-pageMargin && need < pageH-2*pageMargin {
			d.AddPage()
		}
		d.SetFont("Helvetica", "B", 12)
		d.CellFormat(0, 8, d.tr(fmt.Sprintf("Table: %d | %s", b.TableNumber, b.GroupName)), "", 1, "L", false, 0, "")
		d.row(widths, []string{"No", "Guest", "Menu"}, "CLL", true)
		for _, g := range b.Guests {
			d.row(widths, []string{strconv.Itoa(g.No), g.Name, g.Menu}, "CLL", false)
		}
		d.Ln(4)
	}
	return d.finish(w)
}

// WriteFloorPlanPDF draws the plan as a grid of boxes labelled with the
// table number, group and head count.  Tables listed in highlight are
// shaded.
func WriteFloorPlanPDF(w io.Writer, fp simulation.FloorPlan, tables []TableSummary, highlight []int, meta Meta) error {
	d := newPDF("L", meta, "Floor Plan")
	byID := make(map[int]TableSummary, len(tables))
	for _, t := range tables {
		byID[t.TableNumber] = t
	}
	marked := make(map[int]bool, len(highlight))
	for _, id := range highlight {
		marked[id] = true
	}

	pageW, pageH := d.GetPageSize()
	top := d.GetY()
	gap := 2.0
	cols := fp.Cols
	if cols < 1 {
		cols = 1
	}
	rows := fp.Rows
	if rows < 1 {
		rows = 1
	}
	boxW := (pageW - 2*pageMargin - gap*float64(cols-1)) / float64(cols)
	boxH := (pageH - top - pageMargin - gap*float64(rows-1)) / float64(rows)
	if boxH > 30 {
		boxH = 30
	}
	d.SetAutoPageBreak(false, pageMargin)

	for r, line := range fp.Cells {
		for c, id := range line {
			x := pageMargin + float64(c)*(boxW+gap)
			y := top + float64(r)*(boxH+gap)
			if id == 0 {
				d.SetDrawColor(170, 170, 170)
				d.Rect(x, y, boxW, boxH, "D")
				continue
			}
			d.SetDrawColor(0, 0, 0)
			style := "D"
			if marked[id] {
				d.SetFillColor(255, 224, 178)
				style = "FD"
			}
			d.Rect(x, y, boxW, boxH, style)

			t := byID[id]
			d.SetXY(x, y+1)
			d.SetFont("Helvetica", "B", 11)
			d.CellFormat(boxW, 6, strconv.Itoa(id), "", 2, "C", false, 0, "")
			d.SetFont("Helvetica", "", 7)
			d.CellFormat(boxW, 4, d.tr(t.GroupName), "", 2, "C", false, 0, "")
			d.CellFormat(boxW, 4, fmt.Sprintf("%d pax", t.Total), "", 2, "C", false, 0, "")
		}
	}
	return d.finish(w)
}
