package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/meinhoongagan/salon-booking/booking"
)

var (
	countAppointmentsByProfessional = regexp.QuoteMeta(`SELECT count(*) FROM "appointments" WHERE professional_id = $1`)
	countAdminsByProfessional       = regexp.QuoteMeta(`SELECT count(*) FROM "admins" WHERE professional_id = $1`)
	deleteProfessionalLinks         = regexp.QuoteMeta(`DELETE FROM professional_services WHERE professional_id = $1`)
	deleteProfessionalRow           = regexp.QuoteMeta(`DELETE FROM "professionals" WHERE "professionals"."id" = $1`)
)

func countRows(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestDeleteProfessional_ReferencedByAppointments(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(countAppointmentsByProfessional).WithArgs("p1").WillReturnRows(countRows(2))
	mock.ExpectRollback()

	if err := NewCatalogRepository(gdb).DeleteProfessional(context.Background(), "p1"); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteProfessional_ReferencedByAdmin(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(countAppointmentsByProfessional).WithArgs("p1").WillReturnRows(countRows(0))
	mock.ExpectQuery(countAdminsByProfessional).WithArgs("p1").WillReturnRows(countRows(1))
	mock.ExpectRollback()

	if err := NewCatalogRepository(gdb).DeleteProfessional(context.Background(), "p1"); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteProfessional_ForeignKeyRaceIsInUse(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(countAppointmentsByProfessional).WithArgs("p1").WillReturnRows(countRows(0))
	mock.ExpectQuery(countAdminsByProfessional).WithArgs("p1").WillReturnRows(countRows(0))
	mock.ExpectExec(deleteProfessionalLinks).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(deleteProfessionalRow).WithArgs("p1").WillReturnError(&pgconn.PgError{Code: "23503"})
	mock.ExpectRollback()

	if err := NewCatalogRepository(gdb).DeleteProfessional(context.Background(), "p1"); !errors.Is(err, ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
	expectMet(t, mock)
}

func TestDeleteProfessional(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     error
	}{
		{"deleted", 1, nil},
		{"missing", 0, booking.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gdb, mock := newMockDB(t)
			mock.ExpectBegin()
			mock.ExpectQuery(countAppointmentsByProfessional).WithArgs("p1").WillReturnRows(countRows(0))
			mock.ExpectQuery(countAdminsByProfessional).WithArgs("p1").WillReturnRows(countRows(0))
			mock.ExpectExec(deleteProfessionalLinks).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectExec(deleteProfessionalRow).WithArgs("p1").WillReturnResult(sqlmock.NewResult(0, tt.affected))
			if tt.want == nil {
				mock.ExpectCommit()
			} else {
				mock.ExpectRollback()
			}

			err := NewCatalogRepository(gdb).DeleteProfessional(context.Background(), "p1")
			if !errors.Is(err, tt.want) {
				t.Fatalf("DeleteProfessional = %v, want %v", err, tt.want)
			}
			expectMet(t, mock)
		})
	}
}

func TestDeleteService_OnlyChecksAppointments(t *testing.T) {
	gdb, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "appointments" WHERE service_id = $1`)).WithArgs("s1").WillReturnRows(countRows(0))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM professional_services WHERE service_id = $1`)).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "services" WHERE "services"."id" = $1`)).WithArgs("s1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := NewCatalogRepository(gdb).DeleteService(context.Background(), "s1"); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	expectMet(t, mock)
}
