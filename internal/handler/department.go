package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sixphrase/slot-reservation/internal/repository"
)

// DepartmentHandler serves the read side of departments and sections.
// Writes are admin-only and live in AdminHandler.
type DepartmentHandler struct {
	Departments *repository.DepartmentRepo
}

func NewDepartmentHandler(d *repository.DepartmentRepo) *DepartmentHandler {
	if d == nil {
		panic("nil repository passed to NewDepartmentHandler")
	}
	return &DepartmentHandler{Departments: d}
}

// List handles GET /v1/departments.
func (h *DepartmentHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	depts, err := h.Departments.ListDepartments(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"departments": depts})
}

// Sections handles GET /v1/departments/:id/sections.
func (h *DepartmentHandler) Sections(c echo.Context) error {
	deptID, err := parseUintParam(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid department id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	sections, err := h.Departments.ListSections(ctx, deptID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"sections": sections})
}
