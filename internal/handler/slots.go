package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/repository"
	"github.com/sixphrase/slot-reservation/internal/timetable"
)

// SlotHandler serves the weekly grid and the rule-derivation endpoints the
// selection UI drives: slot 2 options for a chosen first slot, the mandated
// third slot, and a stateless triple validation.  Derivations are pure
// calendar arithmetic; only the grid endpoints touch the ledger.
type SlotHandler struct {
	Slots *repository.SlotRepo
}

func NewSlotHandler(s *repository.SlotRepo) *SlotHandler {
	if s == nil {
		panic("nil repository passed to NewSlotHandler")
	}
	return &SlotHandler{Slots: s}
}

// slotView is a ledger row with its derived availability status.
type slotView struct {
	model.Slot
	Remaining int    `json:"remaining"`
	Status    string `json:"status"`
}

func viewOf(s model.Slot) slotView {
	return slotView{Slot: s, Remaining: s.Remaining(), Status: s.Status()}
}

// List handles GET /v1/slots.  It returns all 18 ledger rows ordered by
// day then period, each with remaining capacity and status.
func (h *SlotHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	slots, err := h.Slots.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	views := make([]slotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, viewOf(s))
	}
	return c.JSON(http.StatusOK, echo.Map{"slots": views})
}

// Slot2Options handles GET /v1/slots/:id/slot2-options.  Given a first
// slot it returns the two permitted second slots, annotated with their
// current ledger state.
func (h *SlotHandler) Slot2Options(c echo.Context) error {
	slot1, err := timetable.ParseSlotID(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	options, err := timetable.AllowedSlot2Options(slot1)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	views := make([]slotView, 0, len(options))
	for _, id := range options {
		s, err := h.Slots.Get(ctx, id.String())
		if err != nil {
			if errors.Is(err, repository.ErrSlotNotFound) {
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "ledger missing slot row"})
			}
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
		}
		views = append(views, viewOf(s))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slot1_id": slot1.String(),
		"options":  views,
	})
}

// Slot3 handles GET /v1/slots/slot3?slot1=...&slot2=...  It returns the
// single third slot the rule mandates for the chosen pair.
func (h *SlotHandler) Slot3(c echo.Context) error {
	slot1, err := timetable.ParseSlotID(c.QueryParam("slot1"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot1 id"})
	}
	slot2, err := timetable.ParseSlotID(c.QueryParam("slot2"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid slot2 id"})
	}
	slot3, err := timetable.MandatorySlot3(slot1, slot2)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Slots.Get(ctx, slot3.String())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"slot1_id": slot1.String(),
		"slot2_id": slot2.String(),
		"slot3":    viewOf(s),
	})
}

type validateReq struct {
	Slot1ID string `json:"slot1_id"`
	Slot2ID string `json:"slot2_id"`
	Slot3ID string `json:"slot3_id"`
}

// Validate handles POST /v1/slots/validate.  A stateless dry run of the
// dependency rule: it never consults capacity and never reserves anything.
func (h *SlotHandler) Validate(c echo.Context) error {
	var req validateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ids := [3]string{req.Slot1ID, req.Slot2ID, req.Slot3ID}
	var slots [3]timetable.SlotID
	for i, raw := range ids {
		id, err := timetable.ParseSlotID(raw)
		if err != nil {
			return c.JSON(http.StatusOK, echo.Map{"valid": false, "reason": "invalid slot id: " + raw})
		}
		slots[i] = id
	}
	if err := timetable.ValidateTriple(slots[0], slots[1], slots[2]); err != nil {
		var verr *timetable.ValidationError
		if errors.As(err, &verr) {
			return c.JSON(http.StatusOK, echo.Map{"valid": false, "reason": verr.Reason})
		}
		return c.JSON(http.StatusOK, echo.Map{"valid": false, "reason": err.Error()})
	}
	return c.JSON(http.StatusOK, echo.Map{"valid": true})
}
