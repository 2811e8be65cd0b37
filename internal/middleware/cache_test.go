package middleware

import (
    "bytes"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/banquet-seating/internal/config"
)

func newContext(e *echo.Echo, target, accept string) echo.Context {
    req := httptest.NewRequest(http.MethodGet, target, nil)
    if accept != "" {
        req.Header.Set(echo.HeaderAccept, accept)
    }
    c := e.NewContext(req, httptest.NewRecorder())
    c.SetPath("/v1/reports/summary")
    return c
}

func TestCacheKeyFrom(t *testing.T) {
    e := echo.New()
    cfg := config.CacheConfig{Prefix: "report-cache", KeyStrategy: "route_query"}

    base := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=csv", ""), 1)
    if !strings.HasPrefix(base, "report-cache:g1:") {
        t.Fatalf("key %q lacks prefix and generation", base)
    }
    if again := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=csv", ""), 1); again != base {
        t.Errorf("key not stable: %q vs %q", again, base)
    }
    if k := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=csv", ""), 2); k == base {
        t.Error("generation bump did not change the key")
    }
    if k := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=pdf", ""), 1); k == base {
        t.Error("query change did not change the key")
    }
    if k := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=csv", "application/pdf"), 1); k == base {
        t.Error("accept change did not change the key")
    }

    cfg.KeyStrategy = "route"
    a := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=csv", ""), 1)
    b := cacheKeyFrom(cfg, newContext(e, "/v1/reports/summary?format=pdf", ""), 1)
    if a != b {
        t.Error("route strategy should ignore the query")
    }
}

func TestPayloadRoundTrip(t *testing.T) {
    hdr := http.Header{"Content-Type": {"text/csv"}}
    body := []byte("table_number,group_name\n1,Kelab\n")
    bs, err := encodePayload(http.StatusOK, hdr, body)
    if err != nil {
        t.Fatalf("encodePayload: %v", err)
    }
    status, gotHdr, gotBody, ok := decodePayload(bs)
    if !ok || status != http.StatusOK || gotHdr.Get("Content-Type") != "text/csv" || !bytes.Equal(gotBody, body) {
        t.Fatalf("decodePayload = %d %v %q %v", status, gotHdr, gotBody, ok)
    }
    if _, _, _, ok := decodePayload([]byte{0, 0, 0, 200, 0, 0, 1, 0}); ok {
        t.Error("truncated payload decoded")
    }
}

func TestCaptureWriterOverflow(t *testing.T) {
    rec := httptest.NewRecorder()
    cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 8}
    _, _ = cw.Write([]byte("12345"))
    _, _ = cw.Write([]byte("67890"))
    if !cw.overflow || cw.buf.Len() != 0 {
        t.Fatalf("overflow=%v buffered=%d", cw.overflow, cw.buf.Len())
    }
    if rec.Body.String() != "1234567890" {
        t.Errorf("client body = %q", rec.Body.String())
    }
}

func TestReportCacheDisabledPassesThrough(t *testing.T) {
    e := echo.New()
    mw := NewReportCache(config.CacheConfig{Enabled: true}, nil, nil)
    e.GET("/r", func(c echo.Context) error { return c.String(http.StatusOK, "fresh") }, mw)

    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/r", nil))
    if rec.Code != http.StatusOK || rec.Body.String() != "fresh" {
        t.Fatalf("got %d %q", rec.Code, rec.Body.String())
    }
    if rec.Header().Get("X-Cache") != "" {
        t.Error("disabled cache set X-Cache")
    }
}

func TestCacheable(t *testing.T) {
    tests := []struct {
        name     string
        status   int
        control  string
        overflow bool
        want     bool
    }{
        {"ok", http.StatusOK, "", false, true},
        {"public", http.StatusOK, "public, max-age=60", false, true},
        {"no-store", http.StatusOK, "no-store", false, false},
        {"no-store among others", http.StatusOK, "private, No-Store", false, false},
        {"error status", http.StatusServiceUnavailable, "", false, false},
        {"too large", http.StatusOK, "", true, false},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            hdr := http.Header{}
            if tt.control != "" {
                hdr.Set(echo.HeaderCacheControl, tt.control)
            }
            if got := cacheable(tt.status, hdr, tt.overflow); got != tt.want {
                t.Errorf("cacheable = %v, want %v", got, tt.want)
            }
        })
    }
}
