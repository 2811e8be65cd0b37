package handler

import (
    "context"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/banquet-seating/internal/model"
)

// Loader is the read half of a guest store.
type Loader interface {
    Load(ctx context.Context) (model.Collection, error)
}

// Health reports liveness and whether the guest store can be read.  The
// service stays up when the store is unavailable, so the status is 200
// either way and the store field carries the detail.
func Health(store Loader) echo.HandlerFunc {
    return func(c echo.Context) error {
        out := echo.Map{"status": "ok", "store": "ok"}
        if _, err := store.Load(c.Request().Context()); err != nil {
            out["store"] = "unavailable"
            out["detail"] = err.Error()
        }
        return c.JSON(http.StatusOK, out)
    }
}
