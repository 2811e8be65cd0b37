package handler

import (
    "bytes"
    "fmt"
    "io"
    "net/http"
    "strings"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/banquet-seating/internal/identity"
    "github.com/iliyamo/banquet-seating/internal/report"
    "github.com/iliyamo/banquet-seating/internal/seating"
    "github.com/iliyamo/banquet-seating/internal/service"
)

// Content types of the report formats.
const (
    mimeCSV  = "text/csv; charset=utf-8"
    mimePDF  = "application/pdf"
    mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
    mimeHTML = "text/html; charset=utf-8"
)

// HeaderWarning carries the warnings of a report built from substitute
// data, one value per warning.
const HeaderWarning = "X-Seating-Warning"

// ReportHandler renders reports from the live guest list and from
// simulations.
type ReportHandler struct {
    Svc    *service.SeatingService
    Title  string           // event title printed on every report
    Target int              // guest target for the dashboard
    Now    func() time.Time // report timestamp
}

// NewReportHandler panics when svc is nil.
func NewReportHandler(svc *service.SeatingService, title string, target int) *ReportHandler {
    if svc == nil {
        panic("nil service passed to NewReportHandler")
    }
    return &ReportHandler{Svc: svc, Title: title, Target: target, Now: time.Now}
}

func (h *ReportHandler) meta(title string) report.Meta {
    if h.Title != "" {
        title = h.Title + " - " + title
    }
    return report.Meta{Title: title, GeneratedAt: h.Now()}
}

func format(c echo.Context, def string) string {
    f := strings.ToLower(strings.TrimSpace(c.QueryParam("format")))
    if f == "" {
        return def
    }
    return f
}

// attachment renders into memory first so a writer error still yields
// a clean JSON error instead of a truncated file.
func attachment(c echo.Context, mime, name string, write func(io.Writer) error) error {
    var buf bytes.Buffer
    if err := write(&buf); err != nil {
        return fail(c, err)
    }
    c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))
    return c.Blob(http.StatusOK, mime, buf.Bytes())
}

// degraded marks a report built from substitute data so that neither
// the report cache nor an intermediary keeps it.
func degraded(c echo.Context, warnings []string) {
    if len(warnings) == 0 {
        return
    }
    h := c.Response().Header()
    h.Set(echo.HeaderCacheControl, "no-store")
    for _, w := range warnings {
        h.Add(HeaderWarning, w)
    }
}

func unsupported(c echo.Context, f string, allowed ...string) error {
    return badRequest(c, fmt.Sprintf("unsupported format %q (want %s)", f, strings.Join(allowed, ", ")))
}

// Summary serves the table summary of the live list in the order of the
// tables' data ids.
func (h *ReportHandler) Summary(c echo.Context) error {
    snap, err := h.Svc.Snapshot(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    degraded(c, snap.Warnings)
    s := report.Project(snap.Guests, nil)
    meta := h.meta("Table Summary")
    switch f := format(c, "json"); f {
    case "json":
        return c.JSON(http.StatusOK, s)
    case "csv":
        return attachment(c, mimeCSV, "table_summary.csv", func(w io.Writer) error { return report.WriteSummaryCSV(w, s) })
    case "pdf":
        return attachment(c, mimePDF, "table_summary.pdf", func(w io.Writer) error { return report.WriteSummaryPDF(w, s, meta) })
    case "xlsx":
        return attachment(c, mimeXLSX, "table_summary.xlsx", func(w io.Writer) error { return report.WriteSummaryXLSX(w, s, meta) })
    default:
        return unsupported(c, f, "json", "csv", "pdf", "xlsx")
    }
}

// Guests serves the guest list ordered by name (?order=name, default)
// or grouped by table (?order=table).
func (h *ReportHandler) Guests(c echo.Context) error {
    snap, err := h.Svc.Snapshot(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    degraded(c, snap.Warnings)
    f := format(c, "json")
    switch order := strings.ToLower(c.QueryParam("order")); order {
    case "", "name":
        guests := report.GuestsByName(snap.Guests)
        meta := h.meta("Guest List (A-Z)")
        switch f {
        case "json":
            return c.JSON(http.StatusOK, echo.Map{"items": guests})
        case "csv":
            return attachment(c, mimeCSV, "guests_by_name.csv", func(w io.Writer) error { return report.WriteGuestsByNameCSV(w, guests) })
        case "pdf":
            return attachment(c, mimePDF, "guests_by_name.pdf", func(w io.Writer) error { return report.WriteGuestsByNamePDF(w, guests, meta) })
        }
    case "table":
        blocks := report.GuestsByTable(snap.Guests)
        meta := h.meta("Guest List by Table")
        switch f {
        case "json":
            return c.JSON(http.StatusOK, echo.Map{"items": blocks})
        case "csv":
            rows := seating.FilterGuests(snap.Guests, seating.GuestFilter{})
            return attachment(c, mimeCSV, "guests_by_table.csv", func(w io.Writer) error { return report.WriteGuestsCSV(w, rows) })
        case "pdf":
            return attachment(c, mimePDF, "guests_by_table.pdf", func(w io.Writer) error { return report.WriteGuestsByTablePDF(w, blocks, meta) })
        }
    default:
        return badRequest(c, "order must be name or table")
    }
    return unsupported(c, f, "json", "csv", "pdf")
}

// Dashboard serves the KPIs as JSON or the standalone HTML page.
func (h *ReportHandler) Dashboard(c echo.Context) error {
    snap, err := h.Svc.Snapshot(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    degraded(c, snap.Warnings)
    d := report.BuildDashboard(snap.Guests, h.Target)
    switch f := format(c, "json"); f {
    case "json":
        return c.JSON(http.StatusOK, d)
    case "html":
        res, err := identity.ForView(snap.View)
        if err != nil {
            return fail(c, err)
        }
        page := report.DashboardPage{
            Meta:      h.meta("Seating Dashboard"),
            Rows:      snap.View.Rows,
            Cols:      snap.View.Cols,
            Cells:     seating.BuildCells(res, snap.Guests),
            Dashboard: d,
        }
        var buf bytes.Buffer
        if err := report.WriteDashboardHTML(&buf, page); err != nil {
            return fail(c, err)
        }
        return c.Blob(http.StatusOK, mimeHTML, buf.Bytes())
    default:
        return unsupported(c, f, "json", "html")
    }
}

// Simulation renders the summary of a simulated layout.  ?layout=floorplan
// returns the floor plan with the new tables highlighted instead.
func (h *ReportHandler) Simulation(c echo.Context) error {
    var body simulateBody
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid body")
    }
    view, warnings, err := h.Svc.Simulate(c.Request().Context(), body.InsertAfter)
    if err != nil {
        return fail(c, err)
    }
    degraded(c, warnings)
    floorPlan := strings.EqualFold(c.QueryParam("layout"), "floorplan")
    switch f := format(c, "pdf"); f {
    case "json":
        return c.JSON(http.StatusOK, view)
    case "pdf":
        if floorPlan {
            meta := h.meta("Simulated Floor Plan")
            return attachment(c, mimePDF, "simulated_floor_plan.pdf", func(w io.Writer) error {
                return report.WriteFloorPlanPDF(w, view.FloorPlan, view.Summary.Tables, view.NewIDs, meta)
            })
        }
        meta := h.meta("Simulated Table Summary")
        return attachment(c, mimePDF, "simulated_summary.pdf", func(w io.Writer) error {
            return report.WriteSummaryPDF(w, view.Summary, meta)
        })
    default:
        return unsupported(c, f, "json", "pdf")
    }
}
