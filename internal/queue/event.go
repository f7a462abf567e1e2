// Package queue defines message payloads exchanged over the message broker.
package queue

// SubmissionConfirmedEvent is published after a submission commits.  It
// carries enough information for downstream consumers to log or notify
// without querying the primary database.
type SubmissionConfirmedEvent struct {
	SubmissionID uint64   `json:"submission_id"`
	DepartmentID uint64   `json:"department_id"`
	SectionID    uint64   `json:"section_id"`
	SlotIDs      []string `json:"slots"`
	SubmittedAt  string   `json:"submitted_at"`
}
