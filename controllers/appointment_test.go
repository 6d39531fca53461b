package controllers

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/reports"
	"github.com/meinhoongagan/salon-booking/repository"
)

type fakeAppointments struct {
	rows    map[string]models.Appointment
	filters []repository.AppointmentFilter
	deleted []string
}

func newFakeAppointments() *fakeAppointments {
	corte := &models.Service{Name: "Corte", Price: 50}
	ana := &models.Professional{Name: "Ana"}
	return &fakeAppointments{rows: map[string]models.Appointment{
		"a1": {ID: "a1", ProfessionalID: "p1", AppointmentDate: "2026-10-05", Status: models.StatusCompleted, Service: corte, Professional: ana},
		"a2": {ID: "a2", ProfessionalID: "p2", AppointmentDate: "2026-10-06", Status: models.StatusCancelled, Service: corte},
		"a3": {ID: "a3", ProfessionalID: "p1", AppointmentDate: "2026-09-30", Status: models.StatusScheduled, Service: corte, Professional: ana},
	}}
}

func (f *fakeAppointments) Get(_ context.Context, id string) (models.Appointment, error) {
	a, ok := f.rows[id]
	if !ok {
		return a, booking.ErrNotFound
	}
	return a, nil
}

func (f *fakeAppointments) List(_ context.Context, filter repository.AppointmentFilter) ([]models.Appointment, error) {
	f.filters = append(f.filters, filter)
	list := []models.Appointment{}
	for _, a := range f.rows {
		if filter.ProfessionalID != "" && a.ProfessionalID != filter.ProfessionalID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		if filter.From != "" && a.AppointmentDate < filter.From {
			continue
		}
		if filter.To != "" && a.AppointmentDate > filter.To {
			continue
		}
		list = append(list, a)
	}
	return list, nil
}

func (f *fakeAppointments) Dates(_ context.Context, professionalID string) ([]string, error) {
	dates := []string{}
	for _, a := range f.rows {
		if professionalID == "" || a.ProfessionalID == professionalID {
			dates = append(dates, a.AppointmentDate)
		}
	}
	return dates, nil
}

func (f *fakeAppointments) Delete(_ context.Context, id string) error {
	if _, ok := f.rows[id]; !ok {
		return booking.ErrNotFound
	}
	delete(f.rows, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeStatusSetter struct {
	rows *fakeAppointments
}

func (f fakeStatusSetter) SetStatus(ctx context.Context, id string, to models.AppointmentStatus) (models.Appointment, error) {
	a, err := f.rows.Get(ctx, id)
	if err != nil {
		return a, err
	}
	if err := models.ValidateTransition(a.Status, to); err != nil {
		return a, booking.ErrInvalidTransition
	}
	a.Status = to
	f.rows.rows[id] = a
	return a, nil
}

func newAgendaApp() (*fiber.App, *fakeAppointments) {
	rows := newFakeAppointments()
	h := NewAppointmentHandler(rows, fakeStatusSetter{rows: rows})
	r := NewReportHandler(rows)

	app := fiber.New()
	auth := middleware.Protected(testSecret)
	app.Get("/api/admin/appointments", auth, h.GetAllAppointments)
	app.Patch("/api/admin/appointments/:id/status", auth, h.UpdateAppointmentStatus)
	app.Delete("/api/admin/appointments/:id", auth, middleware.RequireRole(models.RoleSuperAdmin), h.DeleteAppointment)
	app.Get("/api/admin/reports/months", auth, r.GetMonths)
	app.Get("/api/admin/reports/monthly", auth, r.GetMonthlyReport)
	app.Get("/api/admin/reports/monthly/services/:name", auth, r.GetServiceReport)
	return app, rows
}

func TestGetAllAppointments_Scoped(t *testing.T) {
	app, rows := newAgendaApp()

	resp := do(t, app, "GET", "/api/admin/appointments?professional_id=p2", "", tokenFor(t, plainAdmin("p1")))
	expectStatus(t, resp, fiber.StatusOK)
	var list []models.Appointment
	decode(t, resp, &list)
	if len(list) != 2 || rows.filters[0].ProfessionalID != "p1" {
		t.Fatalf("plain admin must only see p1, got %d rows filter=%+v", len(list), rows.filters[0])
	}

	resp = do(t, app, "GET", "/api/admin/appointments?status=cancelled", "", tokenFor(t, superAdmin()))
	expectStatus(t, resp, fiber.StatusOK)
	decode(t, resp, &list)
	if len(list) != 1 || list[0].ID != "a2" {
		t.Fatalf("unexpected list: %+v", list)
	}

	resp = do(t, app, "GET", "/api/admin/appointments?status=done", "", tokenFor(t, superAdmin()))
	expectStatus(t, resp, fiber.StatusBadRequest)
}

func TestUpdateAppointmentStatus(t *testing.T) {
	app, _ := newAgendaApp()
	admin := tokenFor(t, plainAdmin("p1"))

	resp := do(t, app, "PATCH", "/api/admin/appointments/a3/status", `{"status":"completed"}`, admin)
	expectStatus(t, resp, fiber.StatusOK)

	// Terminal appointments stay as they are.
	resp = do(t, app, "PATCH", "/api/admin/appointments/a3/status", `{"status":"cancelled"}`, admin)
	expectStatus(t, resp, fiber.StatusConflict)

	// Another professional's appointment is invisible to a plain admin.
	resp = do(t, app, "PATCH", "/api/admin/appointments/a2/status", `{"status":"completed"}`, admin)
	expectStatus(t, resp, fiber.StatusNotFound)

	resp = do(t, app, "PATCH", "/api/admin/appointments/a3/status", `{"status":"archived"}`, admin)
	expectStatus(t, resp, fiber.StatusBadRequest)
}

func TestDeleteAppointment(t *testing.T) {
	app, rows := newAgendaApp()

	expectStatus(t, do(t, app, "DELETE", "/api/admin/appointments/a1", "", tokenFor(t, plainAdmin("p1"))), fiber.StatusForbidden)
	expectStatus(t, do(t, app, "DELETE", "/api/admin/appointments/a1", "", tokenFor(t, superAdmin())), fiber.StatusNoContent)
	expectStatus(t, do(t, app, "DELETE", "/api/admin/appointments/a1", "", tokenFor(t, superAdmin())), fiber.StatusNotFound)
	if len(rows.deleted) != 1 {
		t.Fatalf("unexpected deletes: %v", rows.deleted)
	}
}

func TestReports(t *testing.T) {
	app, _ := newAgendaApp()
	token := tokenFor(t, superAdmin())

	resp := do(t, app, "GET", "/api/admin/reports/months", "", token)
	expectStatus(t, resp, fiber.StatusOK)
	var months []string
	decode(t, resp, &months)
	if len(months) != 2 || months[0] != "2026-10" || months[1] != "2026-09" {
		t.Fatalf("unexpected months: %v", months)
	}

	resp = do(t, app, "GET", "/api/admin/reports/monthly?month=2026-10", "", token)
	expectStatus(t, resp, fiber.StatusOK)
	var monthly reports.Monthly
	decode(t, resp, &monthly)
	if monthly.Completed != 1 || monthly.Cancelled != 1 || monthly.TotalValue != 50 {
		t.Fatalf("unexpected report: %+v", monthly)
	}

	resp = do(t, app, "GET", "/api/admin/reports/monthly/services/Corte?month=2026-10", "", token)
	expectStatus(t, resp, fiber.StatusOK)
	var detail reports.ServiceDetail
	decode(t, resp, &detail)
	if len(detail.Professionals) != 2 {
		t.Fatalf("unexpected detail: %+v", detail)
	}

	resp = do(t, app, "GET", "/api/admin/reports/monthly?month=october", "", token)
	expectStatus(t, resp, fiber.StatusBadRequest)
}

func TestReports_ScopedToProfessional(t *testing.T) {
	app, _ := newAgendaApp()

	resp := do(t, app, "GET", "/api/admin/reports/monthly?month=2026-10", "", tokenFor(t, plainAdmin("p1")))
	expectStatus(t, resp, fiber.StatusOK)
	var monthly reports.Monthly
	decode(t, resp, &monthly)
	if monthly.Cancelled != 0 || monthly.Completed != 1 {
		t.Fatalf("plain admin saw other professionals' numbers: %+v", monthly)
	}
}
