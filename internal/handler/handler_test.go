package handler_test

import (
    "bytes"
    "context"
    "encoding/json"
    "errors"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/banquet-seating/internal/handler"
    "github.com/iliyamo/banquet-seating/internal/model"
    "github.com/iliyamo/banquet-seating/internal/numbering"
    "github.com/iliyamo/banquet-seating/internal/repository"
    "github.com/iliyamo/banquet-seating/internal/seating"
    "github.com/iliyamo/banquet-seating/internal/service"
)

type failingStore struct {
    model.Collection
    saveErr error
}

func (f *failingStore) Load(ctx context.Context) (model.Collection, error) { return f.Clone(), nil }
func (f *failingStore) Save(ctx context.Context, c model.Collection) error { return f.saveErr }

func guests() model.Collection {
    return model.Collection{
        {TableNumber: 3, Seat: 2, Name: "Abu", Menu: "Daging", GroupName: "Kelab"},
        {TableNumber: 3, Seat: 1, Name: "Ali", Menu: "Ayam", GroupName: "Kelab"},
        {TableNumber: 5, Seat: 1, Name: "Simpanan", Menu: "Reserve", GroupName: "Pejabat"},
    }
}

func newServer(t *testing.T, store service.GuestStore, mode model.Mode) *echo.Echo {
    t.Helper()
    svc := service.New(store, repository.NewMemoryViewStore(), service.Options{
        Defaults: model.ViewState{Rows: 2, Cols: 4, Scheme: numbering.Sequential, Mode: mode},
    })
    sh := handler.NewSeatingHandler(svc)
    rh := handler.NewReportHandler(svc, "Majlis", 10)
    rh.Now = func() time.Time { return time.Date(2025, 12, 20, 20, 0, 0, 0, time.UTC) }

    e := echo.New()
    e.GET("/healthz", handler.Health(store))
    e.GET("/v1/view", sh.GetView)
    e.PUT("/v1/view", sh.PutView)
    e.GET("/v1/grid", sh.GetGrid)
    e.POST("/v1/gestures", sh.PostGesture)
    e.GET("/v1/tables/:id", sh.GetTable)
    e.PUT("/v1/tables/:id", sh.PutTable)
    e.POST("/v1/renumber", sh.PostRenumber)
    e.GET("/v1/guests", sh.ListGuests)
    e.POST("/v1/simulate", sh.PostSimulate)
    e.GET("/v1/reports/summary", rh.Summary)
    e.GET("/v1/reports/guests", rh.Guests)
    e.GET("/v1/reports/dashboard", rh.Dashboard)
    e.POST("/v1/reports/simulation", rh.Simulation)
    return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
    var req *http.Request
    if body != "" {
        req = httptest.NewRequest(method, target, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    } else {
        req = httptest.NewRequest(method, target, nil)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

type grid struct {
    Rows       int            `json:"rows"`
    Cols       int            `json:"cols"`
    Scheme     string         `json:"scheme"`
    Mode       string         `json:"mode"`
    SelectedID *int           `json:"selectedId"`
    Tables     []seating.Cell `json:"tables"`
    Warning    string         `json:"warning"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
    t.Helper()
    if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
        t.Fatalf("decode %q: %v", rec.Body.String(), err)
    }
}

func TestGetGrid(t *testing.T) {
    e := newServer(t, repository.NewMemoryGuestStore(guests()), model.ModeMove)
    rec := do(e, http.MethodGet, "/v1/grid", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    var g grid
    decode(t, rec, &g)
    if g.Rows != 2 || g.Cols != 4 || len(g.Tables) != 8 {
        t.Fatalf("grid: %+v", g)
    }
    if c := g.Tables[2]; !c.Occupied || c.Group != "Kelab" || c.Count != 2 {
        t.Errorf("cell 3: %+v", c)
    }
    if g.Tables[0].Occupied {
        t.Error("cell 1 should be vacant")
    }
}

func TestSwapGesture(t *testing.T) {
    store := repository.NewMemoryGuestStore(guests())
    e := newServer(t, store, model.ModeMove)

    rec := do(e, http.MethodPost, "/v1/gestures", `{"action":"swap","fromId":3,"toId":8}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    var g grid
    decode(t, rec, &g)
    if g.Tables[2].Occupied || g.Tables[7].Count != 2 {
        t.Fatalf("swap not reflected: %+v", g.Tables)
    }
    rows, _ := store.Load(context.Background())
    if len(rows.Table(8)) != 2 {
        t.Fatalf("store: %+v", rows)
    }
}

func TestGestureErrors(t *testing.T) {
    tests := []struct {
        name   string
        mode   model.Mode
        body   string
        status int
    }{
        {"out of range", model.ModeMove, `{"action":"swap","fromId":3,"toId":9}`, http.StatusBadRequest},
        {"unknown action", model.ModeMove, `{"action":"shuffle"}`, http.StatusBadRequest},
        {"view mode swap", model.ModeView, `{"action":"swap","fromId":3,"toId":5}`, http.StatusConflict},
        {"select outside edit", model.ModeMove, `{"action":"edit","tableId":3}`, http.StatusConflict},
        {"malformed body", model.ModeMove, `{"action":`, http.StatusBadRequest},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            e := newServer(t, repository.NewMemoryGuestStore(guests()), tt.mode)
            rec := do(e, http.MethodPost, "/v1/gestures", tt.body)
            if rec.Code != tt.status {
                t.Fatalf("status %d, want %d: %s", rec.Code, tt.status, rec.Body.String())
            }
        })
    }
}

func TestSaveFailureReportsNotSaved(t *testing.T) {
    store := &failingStore{Collection: guests(), saveErr: seating.WriteFailed("guest_list.csv", errors.New("read-only file system"))}
    e := newServer(t, store, model.ModeEdit)
    rec := do(e, http.MethodPut, "/v1/tables/3", `{"group_name":"Baru","guests":[{"seat":1,"name":"X"}]}`)
    if rec.Code != http.StatusInternalServerError {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    if !strings.Contains(rec.Body.String(), "not saved") {
        t.Errorf("body: %s", rec.Body.String())
    }
}

func TestTableEditFlow(t *testing.T) {
    store := repository.NewMemoryGuestStore(guests())
    e := newServer(t, store, model.ModeEdit)

    rec := do(e, http.MethodGet, "/v1/tables/3", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("get: %d %s", rec.Code, rec.Body.String())
    }
    var got struct {
        Table service.TableDetail `json:"table"`
    }
    decode(t, rec, &got)
    if got.Table.GroupName != "Kelab" || len(got.Table.Guests) != 2 || got.Table.Guests[0].Name != "Ali" {
        t.Fatalf("detail: %+v", got.Table)
    }

    rec = do(e, http.MethodPut, "/v1/tables/3", `{"group_name":"Keluarga","guests":[{"seat":1,"name":"Siti","menu":"Ikan"}]}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("put: %d %s", rec.Code, rec.Body.String())
    }
    decode(t, rec, &got)
    if got.Table.GroupName != "Keluarga" || len(got.Table.Guests) != 1 || got.Table.Guests[0].TableNumber != 3 {
        t.Fatalf("after put: %+v", got.Table)
    }

    if rec := do(e, http.MethodGet, "/v1/tables/abc", ""); rec.Code != http.StatusBadRequest {
        t.Errorf("bad id: %d", rec.Code)
    }
}

func TestRenumberAndView(t *testing.T) {
    store := repository.NewMemoryGuestStore(guests())
    e := newServer(t, store, model.ModeMove)

    rec := do(e, http.MethodPost, "/v1/renumber", `{"to":"odd_even_split"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("renumber: %d %s", rec.Code, rec.Body.String())
    }
    var g grid
    decode(t, rec, &g)
    if g.Scheme != numbering.OddEvenSplit {
        t.Fatalf("scheme: %s", g.Scheme)
    }
    // the Kelab table keeps its slot (display 3) while its data id moves from 3 to 2
    if c := g.Tables[2]; c.DataID != 2 || c.Group != "Kelab" {
        t.Errorf("display 3: %+v", c)
    }

    rec = do(e, http.MethodPut, "/v1/view", `{"rows":25}`)
    if rec.Code != http.StatusBadRequest {
        t.Errorf("invalid rows: %d", rec.Code)
    }
    rec = do(e, http.MethodPut, "/v1/view", `{"mode":"View"}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("set mode: %d %s", rec.Code, rec.Body.String())
    }
    var v model.ViewState
    decode(t, do(e, http.MethodGet, "/v1/view", ""), &v)
    if v.Mode != model.ModeView || v.Scheme != numbering.OddEvenSplit {
        t.Errorf("view: %+v", v)
    }
}

func TestListGuests(t *testing.T) {
    e := newServer(t, repository.NewMemoryGuestStore(guests()), model.ModeMove)
    var out struct {
        Items []model.GuestRow `json:"items"`
    }
    decode(t, do(e, http.MethodGet, "/v1/guests?table=3", ""), &out)
    if len(out.Items) != 2 || out.Items[0].Seat != 1 {
        t.Fatalf("table filter: %+v", out.Items)
    }
    decode(t, do(e, http.MethodGet, "/v1/guests?search=SIMP", ""), &out)
    if len(out.Items) != 1 || out.Items[0].TableNumber != 5 {
        t.Fatalf("search: %+v", out.Items)
    }
    if rec := do(e, http.MethodGet, "/v1/guests?table=x", ""); rec.Code != http.StatusBadRequest {
        t.Errorf("bad table: %d", rec.Code)
    }
}

func TestSimulateEndpoint(t *testing.T) {
    e := newServer(t, repository.NewMemoryGuestStore(guests()), model.ModeMove)
    rec := do(e, http.MethodPost, "/v1/simulate", `{"insert_after":[3]}`)
    if rec.Code != http.StatusOK {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    var out struct {
        Ordering []int `json:"ordering"`
        NewIDs   []int `json:"new_ids"`
    }
    decode(t, rec, &out)
    if len(out.NewIDs) != 1 || out.NewIDs[0] != 6 || len(out.Ordering) != 3 || out.Ordering[1] != 6 {
        t.Fatalf("simulation: %+v", out)
    }
    if rec := do(e, http.MethodPost, "/v1/simulate", `{"insert_after":[]}`); rec.Code != http.StatusBadRequest {
        t.Errorf("no anchors: %d", rec.Code)
    }
}

func TestReports(t *testing.T) {
    e := newServer(t, repository.NewMemoryGuestStore(guests()), model.ModeMove)
    tests := []struct {
        method, target, body string
        contentType          string
        prefix               string
    }{
        {http.MethodGet, "/v1/reports/summary", "", echo.MIMEApplicationJSON, "{"},
        {http.MethodGet, "/v1/reports/summary?format=csv", "", "text/csv", "Table Number"},
        {http.MethodGet, "/v1/reports/summary?format=pdf", "", "application/pdf", "%PDF"},
        {http.MethodGet, "/v1/reports/summary?format=xlsx", "", "application/vnd.openxmlformats", "PK"},
        {http.MethodGet, "/v1/reports/guests?order=name&format=pdf", "", "application/pdf", "%PDF"},
        {http.MethodGet, "/v1/reports/guests?order=table", "", echo.MIMEApplicationJSON, "{"},
        {http.MethodGet, "/v1/reports/dashboard?format=html", "", "text/html", "<!DOCTYPE html>"},
        {http.MethodPost, "/v1/reports/simulation", `{"insert_after":[5]}`, "application/pdf", "%PDF"},
        {http.MethodPost, "/v1/reports/simulation?layout=floorplan", `{"insert_after":[5]}`, "application/pdf", "%PDF"},
    }
    for _, tt := range tests {
        rec := do(e, tt.method, tt.target, tt.body)
        if rec.Code != http.StatusOK {
            t.Errorf("%s: status %d: %s", tt.target, rec.Code, rec.Body.String())
            continue
        }
        if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, tt.contentType) {
            t.Errorf("%s: content type %q", tt.target, ct)
        }
        if !bytes.HasPrefix(rec.Body.Bytes(), []byte(tt.prefix)) {
            t.Errorf("%s: body starts %q", tt.target, rec.Body.String()[:min(16, rec.Body.Len())])
        }
    }

    if rec := do(e, http.MethodGet, "/v1/reports/summary?format=doc", ""); rec.Code != http.StatusBadRequest {
        t.Errorf("unsupported format: %d", rec.Code)
    }
    if rec := do(e, http.MethodGet, "/v1/reports/guests?order=seat", ""); rec.Code != http.StatusBadRequest {
        t.Errorf("bad order: %d", rec.Code)
    }
}

func TestDashboardJSON(t *testing.T) {
    e := newServer(t, repository.NewMemoryGuestStore(guests()), model.ModeMove)
    var d struct {
        TotalGuests int `json:"total_guests"`
        TablesInUse int `json:"tables_in_use"`
        TargetDelta int `json:"target_delta"`
    }
    decode(t, do(e, http.MethodGet, "/v1/reports/dashboard", ""), &d)
    if d.TotalGuests != 3 || d.TablesInUse != 2 || d.TargetDelta != -7 {
        t.Fatalf("dashboard: %+v", d)
    }
}

func TestHealth(t *testing.T) {
    e := newServer(t, repository.NewCSVGuestStore(t.TempDir()+"/missing.csv"), model.ModeMove)
    var out map[string]string
    rec := do(e, http.MethodGet, "/healthz", "")
    decode(t, rec, &out)
    if rec.Code != http.StatusOK || out["status"] != "ok" || out["store"] != "unavailable" {
        t.Fatalf("health: %d %+v", rec.Code, out)
    }
}

func TestReportFromSubstituteDataIsNotStored(t *testing.T) {
    e := newServer(t, repository.NewCSVGuestStore(t.TempDir()+"/missing.csv"), model.ModeMove)
    rec := do(e, http.MethodGet, "/v1/reports/summary", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    if got := rec.Header().Get(echo.HeaderCacheControl); got != "no-store" {
        t.Errorf("Cache-Control = %q, want no-store", got)
    }
    if w := rec.Header().Get(handler.HeaderWarning); !strings.Contains(w, "guest list unavailable") {
        t.Errorf("%s = %q", handler.HeaderWarning, w)
    }

    e = newServer(t, repository.NewMemoryGuestStore(guests()), model.ModeMove)
    rec = do(e, http.MethodGet, "/v1/reports/summary", "")
    if rec.Header().Get(echo.HeaderCacheControl) != "" || rec.Header().Get(handler.HeaderWarning) != "" {
        t.Errorf("healthy report marked degraded: %v", rec.Header())
    }
}

// downViews is a view store that cannot be reached.
type downViews struct{}

func (downViews) Get(ctx context.Context) (model.ViewState, error) {
    return model.ViewState{}, errors.New("redis: connection refused")
}

func (downViews) Put(ctx context.Context, v model.ViewState) error {
    return errors.New("redis: connection refused")
}

func TestGestureWithUnreadableViewIsUnavailable(t *testing.T) {
    store := repository.NewMemoryGuestStore(guests())
    svc := service.New(store, downViews{}, service.Options{
        Defaults: model.ViewState{Rows: 2, Cols: 4, Scheme: numbering.Sequential, Mode: model.ModeMove},
    })
    e := echo.New()
    e.POST("/v1/gestures", handler.NewSeatingHandler(svc).PostGesture)

    rec := do(e, http.MethodPost, "/v1/gestures", `{"action":"swap","fromId":3,"toId":7}`)
    if rec.Code != http.StatusServiceUnavailable {
        t.Fatalf("status %d: %s", rec.Code, rec.Body.String())
    }
    got, err := store.Load(context.Background())
    if err != nil {
        t.Fatal(err)
    }
    if len(got.Table(3)) != 2 || len(got.Table(7)) != 0 {
        t.Fatalf("guests moved: %+v", got)
    }
}
