package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sixphrase/slot-reservation/internal/config"
	"github.com/sixphrase/slot-reservation/internal/database"
	"github.com/sixphrase/slot-reservation/internal/model"
	"github.com/sixphrase/slot-reservation/internal/repository"
)

// AdminHandler groups the coordinator operations: the system lock gate,
// ledger resets, submission administration, and account/catalog
// management.  Every route using it is wrapped in RequireRole(ADMIN).
type AdminHandler struct {
	Cfg         config.Config
	DB          *sql.DB
	Settings    *repository.SettingsRepo
	Slots       *repository.SlotRepo
	Submissions *repository.SubmissionRepo
	Departments *repository.DepartmentRepo
	Users       *repository.UserRepo
}

func NewAdminHandler(cfg config.Config, db *sql.DB, settings *repository.SettingsRepo, slots *repository.SlotRepo, subs *repository.SubmissionRepo, depts *repository.DepartmentRepo, users *repository.UserRepo) *AdminHandler {
	if db == nil || settings == nil || slots == nil || subs == nil || depts == nil || users == nil {
		panic("nil dependency passed to NewAdminHandler")
	}
	return &AdminHandler{Cfg: cfg, DB: db, Settings: settings, Slots: slots, Submissions: subs, Departments: depts, Users: users}
}

// Status handles GET /v1/status.  Registered without auth so the selection
// UI can show the lock banner before login.
func (h *AdminHandler) Status(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	s, err := h.Settings.Settings(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"locked":  s.IsSystemLocked,
		"message": s.LockMessage,
	})
}

type lockReq struct {
	Locked  bool   `json:"locked"`
	Message string `json:"message"`
}

// SetLock handles PUT /v1/admin/lock.  Setting the same state twice is a
// no-op success.
func (h *AdminHandler) SetLock(c echo.Context) error {
	var req lockReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Settings.SetLocked(ctx, req.Locked, strings.TrimSpace(req.Message)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"locked": req.Locked})
}

// ResetSlots handles POST /v1/admin/slots/reset.  Zeroes every filled
// counter without touching submission rows; pair with ClearSubmissions for
// a full round reset.
func (h *AdminHandler) ResetSlots(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.Slots.ResetAllFilled(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "reset failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ListSubmissions handles GET /v1/admin/submissions.
func (h *AdminHandler) ListSubmissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	details, err := h.Submissions.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"submissions": details})
}

// DeleteSubmission handles DELETE /v1/admin/submissions/:id.  The three
// filled counters are decremented in the same transaction that removes the
// row.
func (h *AdminHandler) DeleteSubmission(c echo.Context) error {
	id, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid submission id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()
	if err := h.Submissions.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSubmissionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "submission not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

// ClearSubmissions handles POST /v1/admin/submissions/clear.  Removes all
// submissions and zeroes the ledger in one transaction.
func (h *AdminHandler) ClearSubmissions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()
	if err := h.Submissions.ClearAll(ctx); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "clear failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}

type createHeadReq struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	DepartmentID uint64 `json:"department_id"`
}

// CreateDepartmentHead handles POST /v1/admin/department-heads.
func (h *AdminHandler) CreateDepartmentHead(c echo.Context) error {
	var req createHeadReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" || req.DepartmentID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email, password and department_id required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Departments.GetDepartment(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	uid, err := h.Users.Create(ctx, req.Email, req.Password, model.RoleDepartmentHead, &req.DepartmentID, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": uid, "email": req.Email, "department_id": req.DepartmentID})
}

type createDepartmentReq struct {
	Name string `json:"name"`
	Year string `json:"year"`
}

// CreateDepartment handles POST /v1/admin/departments.
func (h *AdminHandler) CreateDepartment(c echo.Context) error {
	var req createDepartmentReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || (req.Year != model.YearSecond && req.Year != model.YearThird) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name and year ('2nd' or '3rd') required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	id, err := h.Departments.CreateDepartment(ctx, req.Name, req.Year)
	if err != nil {
		if errors.Is(err, repository.ErrDepartmentExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "department already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": req.Name, "year": req.Year})
}

type createSectionReq struct {
	Name string `json:"name"`
}

// CreateSection handles POST /v1/admin/departments/:id/sections.
func (h *AdminHandler) CreateSection(c echo.Context) error {
	deptID, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department id"})
	}
	var req createSectionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name required"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if _, err := h.Departments.GetDepartment(ctx, deptID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "department not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	id, err := h.Departments.CreateSection(ctx, deptID, req.Name)
	if err != nil {
		if errors.Is(err, repository.ErrSectionExists) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "section already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "department_id": deptID, "name": req.Name})
}

type seedReq struct {
	SeedKey string `json:"seed_key"`
}

// Seed handles POST /v1/seed.  Idempotent catalog bootstrap guarded by a
// shared key; disabled entirely when SEED_KEY is unset.
func (h *AdminHandler) Seed(c echo.Context) error {
	if h.Cfg.SeedKey == "" {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "seeding disabled"})
	}
	var req seedReq
	if err := c.Bind(&req); err != nil || req.SeedKey != h.Cfg.SeedKey {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid seed key"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 30*time.Second)
	defer cancel()
	if err := database.SeedDepartments(ctx, h.DB); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed departments failed"})
	}
	if err := database.SeedSlots(ctx, h.DB, h.Cfg.SlotCapacity); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed slots failed"})
	}
	if err := database.SeedSettings(ctx, h.DB); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed settings failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true})
}
