package handler

import (
    "errors"
    "log"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/banquet-seating/internal/identity"
    "github.com/iliyamo/banquet-seating/internal/numbering"
    "github.com/iliyamo/banquet-seating/internal/seating"
    "github.com/iliyamo/banquet-seating/internal/service"
    "github.com/iliyamo/banquet-seating/internal/simulation"
)

// statusFor maps domain errors onto HTTP status codes.
func statusFor(err error) int {
    switch {
    case errors.Is(err, identity.ErrOutOfRange),
        errors.Is(err, identity.ErrInvalidGrid),
        errors.Is(err, numbering.ErrUnknownScheme),
        errors.Is(err, service.ErrUnknownAction),
        errors.Is(err, service.ErrInvalidMode),
        errors.Is(err, simulation.ErrNoAnchors):
        return http.StatusBadRequest
    case errors.Is(err, service.ErrReadOnly), errors.Is(err, service.ErrWrongMode):
        return http.StatusConflict
    case errors.Is(err, seating.ErrStoreUnavailable):
        return http.StatusServiceUnavailable
    }
    return http.StatusInternalServerError
}

// fail writes err as {"error": ...}.  A failed save is reported as not
// saved so the client knows its change was dropped.
func fail(c echo.Context, err error) error {
    status := statusFor(err)
    msg := err.Error()
    if errors.Is(err, seating.ErrStoreWrite) {
        msg = "changes not saved: " + err.Error()
    }
    if status >= http.StatusInternalServerError {
        log.Printf("handler: %s %s: %v", c.Request().Method, c.Path(), err)
    }
    return c.JSON(status, echo.Map{"error": msg})
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}
