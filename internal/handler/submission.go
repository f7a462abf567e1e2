package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sixphrase/slot-reservation/internal/booking"
	"github.com/sixphrase/slot-reservation/internal/middleware"
	"github.com/sixphrase/slot-reservation/internal/repository"
	"github.com/sixphrase/slot-reservation/internal/service"
	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// SubmissionHandler exposes the submission endpoints.  The heavy lifting
// lives in the booking service; this layer checks authorization against the
// Principal, binds the request and translates the booking error taxonomy
// into HTTP responses.
type SubmissionHandler struct {
	Booking     *booking.Service
	Submissions *repository.SubmissionRepo
	Departments *repository.DepartmentRepo
	Events      *service.EventPublisher // nil when the broker is not configured
}

func NewSubmissionHandler(b *booking.Service, s *repository.SubmissionRepo, d *repository.DepartmentRepo, ev *service.EventPublisher) *SubmissionHandler {
	if b == nil || s == nil || d == nil {
		panic("nil dependency passed to NewSubmissionHandler")
	}
	return &SubmissionHandler{Booking: b, Submissions: s, Departments: d, Events: ev}
}

type submitReq struct {
	DepartmentID uint64 `json:"department_id"`
	SectionID    uint64 `json:"section_id"`
	Slot1ID      string `json:"slot1_id"`
	Slot2ID      string `json:"slot2_id"`
	Slot3ID      string `json:"slot3_id"`
}

// Create handles POST /v1/submissions.  Department heads may submit only
// for their own department; admins for any.  The section must belong to
// the named department.
func (h *SubmissionHandler) Create(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req submitReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "invalid body"})
	}
	if req.DepartmentID == 0 || req.SectionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "department_id and section_id required"})
	}
	if !p.CanSubmitFor(req.DepartmentID) {
		return c.JSON(http.StatusForbidden, echo.Map{"success": false, "error": "forbidden"})
	}

	ctx := c.Request().Context()
	section, err := h.Departments.GetSection(ctx, req.SectionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"success": false, "error": "section not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "database error"})
	}
	if section.DepartmentID != req.DepartmentID {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "section does not belong to department"})
	}

	sub, err := h.Booking.Submit(ctx, booking.Request{
		DepartmentID: req.DepartmentID,
		SectionID:    req.SectionID,
		Slot1ID:      req.Slot1ID,
		Slot2ID:      req.Slot2ID,
		Slot3ID:      req.Slot3ID,
	})
	if err != nil {
		return h.submitError(c, err)
	}

	if h.Events != nil {
		// Best effort after commit; failure to publish never fails the request.
		_ = h.Events.PublishSubmissionConfirmed(ctx, sub)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true, "submission": sub})
}

// submitError maps the booking taxonomy onto HTTP.  Taxonomy messages go
// back verbatim in the error field.
func (h *SubmissionHandler) submitError(c echo.Context, err error) error {
	var (
		locked *booking.LockedError
		full   *booking.SlotFullError
		verr   *timetable.ValidationError
	)
	switch {
	case errors.As(err, &locked):
		return c.JSON(http.StatusLocked, echo.Map{"success": false, "error": locked.Error(), "locked": true})
	case errors.Is(err, booking.ErrAlreadySubmitted):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": err.Error()})
	case errors.As(err, &full):
		return c.JSON(http.StatusConflict, echo.Map{"success": false, "error": full.Error(), "slot_id": full.SlotID.String()})
	case errors.Is(err, timetable.ErrInvalidSlotID):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": err.Error()})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": verr.Reason})
	case errors.Is(err, booking.ErrTimeout), errors.Is(err, booking.ErrConflict):
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": err.Error(), "retryable": true})
	case errors.Is(err, context.Canceled):
		// Client went away; Echo will not deliver the body anyway.
		return err
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": booking.ErrUnavailable.Error()})
	}
}

// Mine handles GET /v1/submissions/mine?section_id=...  It returns the
// caller's department submission for the given section, if any.
func (h *SubmissionHandler) Mine(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	sectionID, err := parseUintParam(c.QueryParam("section_id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid section_id"})
	}
	deptID := p.DepartmentID
	if p.IsAdmin() {
		// Admins may inspect any department's submission.
		if deptID, err = parseUintParam(c.QueryParam("department_id")); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department_id"})
		}
	}
	if deptID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "department_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	sub, err := h.Submissions.GetForSection(ctx, deptID, sectionID)
	if err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"submission": nil})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"submission": sub})
}
