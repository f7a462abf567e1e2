package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sixphrase/slot-reservation/internal/model"
)

// ErrDepartmentExists is returned when a department with the same name and
// year already exists.
var ErrDepartmentExists = errors.New("department already exists")

// ErrSectionExists is returned when a section name is already taken inside
// its department.
var ErrSectionExists = errors.New("section already exists")

// DepartmentRepo provides CRUD operations for departments and their
// sections.  Departments carry a (name, year) unique key; sections carry a
// (department_id, name) unique key.
type DepartmentRepo struct {
	db *sql.DB
}

// NewDepartmentRepo returns a DepartmentRepo bound to the given database.
func NewDepartmentRepo(db *sql.DB) *DepartmentRepo { return &DepartmentRepo{db: db} }

// CreateDepartment inserts a department and returns its generated id.
func (r *DepartmentRepo) CreateDepartment(ctx context.Context, name, year string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO departments (name, year) VALUES (?, ?)`, name, year)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrDepartmentExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// GetDepartment returns one department by id; sql.ErrNoRows when absent.
func (r *DepartmentRepo) GetDepartment(ctx context.Context, id uint64) (model.Department, error) {
	var d model.Department
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, year, created_at FROM departments WHERE id = ?`, id).
		Scan(&d.ID, &d.Name, &d.Year, &d.CreatedAt)
	return d, err
}

// ListDepartments returns all departments ordered by year then name.
func (r *DepartmentRepo) ListDepartments(ctx context.Context) ([]model.Department, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, year, created_at FROM departments ORDER BY year, name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	depts := make([]model.Department, 0)
	for rows.Next() {
		var d model.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Year, &d.CreatedAt); err != nil {
			return nil, err
		}
		depts = append(depts, d)
	}
	return depts, rows.Err()
}

// CreateSection inserts a section for a department and returns its id.
func (r *DepartmentRepo) CreateSection(ctx context.Context, departmentID uint64, name string) (uint64, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO sections (department_id, name) VALUES (?, ?)`, departmentID, name)
	if err != nil {
		if strings.Contains(err.Error(), "1062") {
			return 0, ErrSectionExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	return uint64(id), err
}

// GetSection returns one section by id; sql.ErrNoRows when absent.
func (r *DepartmentRepo) GetSection(ctx context.Context, id uint64) (model.Section, error) {
	var s model.Section
	err := r.db.QueryRowContext(ctx,
		`SELECT id, department_id, name, created_at FROM sections WHERE id = ?`, id).
		Scan(&s.ID, &s.DepartmentID, &s.Name, &s.CreatedAt)
	return s, err
}

// ListSections returns the sections of one department ordered by name.
func (r *DepartmentRepo) ListSections(ctx context.Context, departmentID uint64) ([]model.Section, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, department_id, name, created_at FROM sections WHERE department_id = ? ORDER BY name`,
		departmentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sections := make([]model.Section, 0)
	for rows.Next() {
		var s model.Section
		if err := rows.Scan(&s.ID, &s.DepartmentID, &s.Name, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}
