package handler

import (
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/banquet-seating/internal/identity"
    "github.com/iliyamo/banquet-seating/internal/model"
    "github.com/iliyamo/banquet-seating/internal/seating"
    "github.com/iliyamo/banquet-seating/internal/service"
)

// SeatingHandler serves the grid, gestures, table editing and the guest list.
type SeatingHandler struct {
    Svc *service.SeatingService
}

// NewSeatingHandler panics when svc is nil.
func NewSeatingHandler(svc *service.SeatingService) *SeatingHandler {
    if svc == nil {
        panic("nil service passed to NewSeatingHandler")
    }
    return &SeatingHandler{Svc: svc}
}

// gridResponse is what the rendering surface draws.
type gridResponse struct {
    Rows       int            `json:"rows"`
    Cols       int            `json:"cols"`
    Scheme     string         `json:"scheme"`
    Mode       model.Mode     `json:"mode"`
    SelectedID *int           `json:"selectedId"`
    Tables     []seating.Cell `json:"tables"`
    Warning    string         `json:"warning,omitempty"`
}

func gridOf(st service.State, warnings []string) (gridResponse, error) {
    res, err := identity.ForView(st.View)
    if err != nil {
        return gridResponse{}, err
    }
    return gridResponse{
        Rows:       st.View.Rows,
        Cols:       st.View.Cols,
        Scheme:     st.View.Scheme,
        Mode:       st.View.Mode,
        SelectedID: st.View.SelectedID,
        Tables:     seating.BuildCells(res, st.Guests),
        Warning:    strings.Join(warnings, "; "),
    }, nil
}

// GetView returns the current ViewState.
func (h *SeatingHandler) GetView(c echo.Context) error {
    snap, err := h.Svc.Snapshot(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, snap.View)
}

// PutView updates rows, cols, scheme or mode.  Omitted fields are kept.
func (h *SeatingHandler) PutView(c echo.Context) error {
    var upd service.ViewUpdate
    if err := c.Bind(&upd); err != nil {
        return badRequest(c, "invalid body")
    }
    v, err := h.Svc.SetView(c.Request().Context(), upd)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, v)
}

// GetGrid returns every cell of the grid with its occupancy.
func (h *SeatingHandler) GetGrid(c echo.Context) error {
    snap, err := h.Svc.Snapshot(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    out, err := gridOf(snap.State, snap.Warnings)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

// PostGesture applies a swap, edit (select) or clear gesture and returns
// the redrawn grid.
func (h *SeatingHandler) PostGesture(c echo.Context) error {
    var ev service.Event
    if err := c.Bind(&ev); err != nil {
        return badRequest(c, "invalid body")
    }
    switch ev.Action {
    case service.ActionSwap, service.ActionEdit, service.ActionClear:
    default:
        return badRequest(c, "action must be swap, edit or clear")
    }
    return h.dispatch(c, ev)
}

func (h *SeatingHandler) dispatch(c echo.Context, ev service.Event) error {
    res, err := h.Svc.Dispatch(c.Request().Context(), ev)
    if err != nil {
        return fail(c, err)
    }
    out, err := gridOf(res.State, res.Warnings)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, out)
}

func displayParam(c echo.Context) (int, bool) {
    id, err := strconv.Atoi(c.Param("id"))
    return id, err == nil
}

// GetTable returns the guests and group of a display id.
func (h *SeatingHandler) GetTable(c echo.Context) error {
    id, ok := displayParam(c)
    if !ok {
        return badRequest(c, "invalid id")
    }
    detail, warnings, err := h.Svc.Table(c.Request().Context(), id)
    if err != nil {
        return fail(c, err)
    }
    if len(warnings) > 0 {
        return c.JSON(http.StatusOK, echo.Map{"table": detail, "warning": strings.Join(warnings, "; ")})
    }
    return c.JSON(http.StatusOK, echo.Map{"table": detail})
}

type tableBody struct {
    GroupName string           `json:"group_name"`
    Guests    []model.GuestRow `json:"guests"`
}

// PutTable replaces the rows of a display id.  An empty guest list
// vacates the table.
func (h *SeatingHandler) PutTable(c echo.Context) error {
    id, ok := displayParam(c)
    if !ok {
        return badRequest(c, "invalid id")
    }
    var body tableBody
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid body")
    }
    ctx := c.Request().Context()
    res, err := h.Svc.Dispatch(ctx, service.Event{
        Action:  service.ActionSave,
        TableID: id,
        Group:   strings.TrimSpace(body.GroupName),
        Guests:  body.Guests,
    })
    if err != nil {
        return fail(c, err)
    }
    detail, _, err := h.Svc.Table(ctx, id)
    if err != nil {
        return fail(c, err)
    }
    out := echo.Map{"table": detail}
    if len(res.Warnings) > 0 {
        out["warning"] = strings.Join(res.Warnings, "; ")
    }
    return c.JSON(http.StatusOK, out)
}

// PostRenumber migrates every data id to another scheme.
func (h *SeatingHandler) PostRenumber(c echo.Context) error {
    var body struct {
        To string `json:"to"`
    }
    if err := c.Bind(&body); err != nil || strings.TrimSpace(body.To) == "" {
        return badRequest(c, "target scheme required")
    }
    return h.dispatch(c, service.Event{Action: service.ActionRenumber, Scheme: body.To})
}

// ListGuests returns guest rows filtered by ?table= (data id) and
// ?search= (name substring), sorted by table then seat.
func (h *SeatingHandler) ListGuests(c echo.Context) error {
    var f seating.GuestFilter
    if s := c.QueryParam("table"); s != "" {
        n, err := strconv.Atoi(s)
        if err != nil {
            return badRequest(c, "invalid table")
        }
        f.Table = &n
    }
    f.Search = c.QueryParam("search")

    snap, err := h.Svc.Snapshot(c.Request().Context())
    if err != nil {
        return fail(c, err)
    }
    out := echo.Map{"items": seating.FilterGuests(snap.Guests, f)}
    if len(snap.Warnings) > 0 {
        out["warning"] = strings.Join(snap.Warnings, "; ")
    }
    return c.JSON(http.StatusOK, out)
}

type simulateBody struct {
    InsertAfter []int `json:"insert_after"`
}

// PostSimulate runs a layout simulation.  Nothing is persisted.
func (h *SeatingHandler) PostSimulate(c echo.Context) error {
    var body simulateBody
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid body")
    }
    view, _, err := h.Svc.Simulate(c.Request().Context(), body.InsertAfter)
    if err != nil {
        return fail(c, err)
    }
    return c.JSON(http.StatusOK, view)
}
