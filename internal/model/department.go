package model

import "time"

// Department is an academic department for one year group.  Departments are
// the coarse booking entities; each owns one or more sections.
//
// Fields:
//  ID        – primary key identifier (departments.id).
//  Name      – department name, e.g. "CSE GEN A" (departments.name).
//  Year      – year group, "2nd" or "3rd" (departments.year).
//  CreatedAt – creation timestamp.
type Department struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Year      string    `json:"year"`
	CreatedAt time.Time `json:"created_at"`
}

// Year groups accepted for departments.
const (
	YearSecond = "2nd"
	YearThird  = "3rd"
)

// Section is the fine-grained booking entity within a department.
// Submission exclusivity is scoped per (department, section).
type Section struct {
	ID           uint64    `json:"id"`
	DepartmentID uint64    `json:"department_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}
