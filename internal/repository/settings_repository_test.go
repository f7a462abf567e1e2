package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

// Unlocking clears the message by binding the empty string, never SQL NULL:
// lock_message is a NOT NULL column and the common unlock path must not
// trip a constraint error.
func TestSetLockedUnlockBindsEmptyMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSettingsRepo(db)

	mock.ExpectExec("UPDATE system_settings").
		WithArgs(false, "", sqlmock.AnyArg(), "main").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetLocked(context.Background(), false, ""); err != nil {
		t.Fatalf("SetLocked: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected bind: %v", err)
	}
}

func TestSetLockedWithMessage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	repo := NewSettingsRepo(db)

	mock.ExpectExec("UPDATE system_settings").
		WithArgs(true, "allocation window closed", sqlmock.AnyArg(), "main").
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.SetLocked(context.Background(), true, "allocation window closed"); err != nil {
		t.Fatalf("SetLocked: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected bind: %v", err)
	}
}
