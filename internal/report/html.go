package report

import (
	"html/template"
	"io"

	"github.com/iliyamo/banquet-seating/internal/seating"
)

// DashboardPage is the data behind the standalone HTML dashboard.
type DashboardPage struct {
	Meta      Meta
	Rows      int
	Cols      int
	Cells     []seating.Cell
	Dashboard Dashboard
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{if .Meta.Title}}{{.Meta.Title}}{{else}}Banquet Dashboard{{end}}</title>
<style>
body { font-family: sans-serif; margin: 0; padding: 20px; background: #f0f2f6; }
h1 { text-align: center; color: #31333f; }
.kpi { display: flex; gap: 24px; justify-content: center; margin-bottom: 20px; }
.kpi div { background: #fff; padding: 10px 18px; border-radius: 8px; }
.grid { display: grid; gap: 10px; grid-template-columns: repeat({{.Cols}}, 1fr); }
.table-box { border: 2px solid #ddd; border-radius: 8px; height: 110px; display: flex; flex-direction: column; justify-content: center; align-items: center; }
.occupied { background: #00bcd4; color: #fff; border-color: #008ba3; }
.vacant { background: #e0e0e0; color: #aaa; border-style: dashed; }
.table-id { font-weight: bold; font-size: 1.2em; }
.guest-count { margin-top: 5px; font-size: 0.85em; background: rgba(0,0,0,0.1); padding: 2px 6px; border-radius: 10px; }
#footer { text-align: center; margin-top: 30px; color: #666; font-size: 0.9em; }
</style>
</head>
<body>
<h1>{{if .Meta.Title}}{{.Meta.Title}}{{else}}Banquet Seating Dashboard{{end}}</h1>
<div class="kpi">
<div>Total Guests: <b>{{.Dashboard.TotalGuests}}</b></div>
<div>Tables: <b>{{.Dashboard.TablesInUse}}</b></div>
<div>Target: <b>{{.Dashboard.Target}}</b> ({{.Dashboard.Performance.StringFixed 1}}%)</div>
</div>
<div class="grid">
{{- range .Cells}}
<div class="table-box {{if .Occupied}}occupied{{else}}vacant{{end}}" id="table-{{.ID}}">
<div class="table-id">{{.ID}}</div>
<div class="group-name">{{if .Occupied}}{{.Group}}{{else}}Vacant{{end}}</div>
{{- if .Occupied}}
<div class="guest-count">{{.Count}} pax</div>
{{- end}}
</div>
{{- end}}
</div>
<div id="footer">Generated on {{.Meta.GeneratedAt.Format "2006-01-02 15:04:05"}}</div>
</body>
</html>
`))

// WriteDashboardHTML renders the read-only grid as a standalone page.
func WriteDashboardHTML(w io.Writer, page DashboardPage) error {
	return dashboardTmpl.Execute(w, page)
}
