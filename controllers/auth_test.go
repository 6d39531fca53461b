package controllers

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/salon-booking/booking"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
	"github.com/meinhoongagan/salon-booking/repository"
	"golang.org/x/crypto/bcrypt"
)

type fakeAdmins struct {
	byEmail map[string]models.Admin
	deleted []string
}

func (f *fakeAdmins) ByEmail(_ context.Context, email string) (models.Admin, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return models.Admin{}, booking.ErrNotFound
	}
	return a, nil
}

func (f *fakeAdmins) List(context.Context) ([]models.Admin, error) {
	list := []models.Admin{}
	for _, a := range f.byEmail {
		list = append(list, a)
	}
	return list, nil
}

func (f *fakeAdmins) Create(_ context.Context, a *models.Admin) error {
	if _, ok := f.byEmail[a.Email]; ok {
		return repository.ErrDuplicate
	}
	a.ID = "new-" + a.Email
	if a.Role == models.RoleAdmin && a.ProfessionalID == nil {
		p := "prof-" + a.Email
		a.ProfessionalID = &p
	}
	f.byEmail[a.Email] = *a
	return nil
}

func (f *fakeAdmins) Delete(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func newAdminApp(t *testing.T) (*fiber.App, *fakeAdmins) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	prof := "p1"
	admins := &fakeAdmins{byEmail: map[string]models.Admin{
		"ana@salon.test": {ID: "ana-admin", Email: "ana@salon.test", Name: "Ana", PasswordHash: string(hash),
			Role: models.RoleAdmin, ProfessionalID: &prof},
	}}
	h := NewAdminHandler(admins, testSecret)

	app := fiber.New()
	auth := middleware.Protected(testSecret)
	super := middleware.RequireRole(models.RoleSuperAdmin)
	app.Post("/api/admin/login", h.Login)
	app.Get("/api/admin/admins", auth, super, h.GetAdmins)
	app.Post("/api/admin/admins", auth, super, h.CreateAdmin)
	app.Delete("/api/admin/admins/:id", auth, super, h.DeleteAdmin)
	return app, admins
}

func TestLogin(t *testing.T) {
	app, _ := newAdminApp(t)

	resp := do(t, app, "POST", "/api/admin/login", `{"email":"ana@salon.test","password":"s3cret!"}`, "")
	expectStatus(t, resp, fiber.StatusOK)

	var body struct {
		Token string       `json:"token"`
		Admin models.Admin `json:"admin"`
	}
	decode(t, resp, &body)
	if body.Admin.PasswordHash != "" {
		t.Fatalf("password hash must not be returned")
	}

	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(body.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims["id"] != "ana-admin" || claims["role"] != models.RoleAdmin || claims["professional_id"] != "p1" {
		t.Fatalf("unexpected claims: %v", claims)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app, _ := newAdminApp(t)

	for _, body := range []string{
		`{"email":"ana@salon.test","password":"wrong"}`,
		`{"email":"nobody@salon.test","password":"s3cret!"}`,
	} {
		resp := do(t, app, "POST", "/api/admin/login", body, "")
		expectStatus(t, resp, fiber.StatusUnauthorized)
	}
}

func TestCreateAdmin(t *testing.T) {
	app, admins := newAdminApp(t)
	token := tokenFor(t, superAdmin())

	resp := do(t, app, "POST", "/api/admin/admins",
		`{"email":" Bia@Salon.test ","password":"123456","name":"Bia"}`, token)
	expectStatus(t, resp, fiber.StatusCreated)

	var created models.Admin
	decode(t, resp, &created)
	if created.Email != "bia@salon.test" || created.Role != models.RoleAdmin || created.ProfessionalID == nil {
		t.Fatalf("unexpected admin: %+v", created)
	}
	stored := admins.byEmail["bia@salon.test"]
	if bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("123456")) != nil {
		t.Fatalf("password was not hashed")
	}

	resp = do(t, app, "POST", "/api/admin/admins",
		`{"email":"bia@salon.test","password":"123456","name":"Bia"}`, token)
	expectStatus(t, resp, fiber.StatusBadRequest)
}

func TestCreateAdmin_Validation(t *testing.T) {
	app, _ := newAdminApp(t)
	token := tokenFor(t, superAdmin())

	tests := map[string]string{
		"short password": `{"email":"x@salon.test","password":"123","name":"X"}`,
		"bad email":      `{"email":"x","password":"123456","name":"X"}`,
		"no name":        `{"email":"x@salon.test","password":"123456","name":" "}`,
		"unknown role":   `{"email":"x@salon.test","password":"123456","name":"X","role":"owner"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := do(t, app, "POST", "/api/admin/admins", body, token)
			expectStatus(t, resp, fiber.StatusBadRequest)
		})
	}
}

func TestAdminRoutesRequireSuperAdmin(t *testing.T) {
	app, admins := newAdminApp(t)

	resp := do(t, app, "GET", "/api/admin/admins", "", tokenFor(t, plainAdmin("p1")))
	expectStatus(t, resp, fiber.StatusForbidden)

	resp = do(t, app, "GET", "/api/admin/admins", "", "")
	expectStatus(t, resp, fiber.StatusUnauthorized)

	resp = do(t, app, "DELETE", "/api/admin/admins/root", "", tokenFor(t, superAdmin()))
	expectStatus(t, resp, fiber.StatusBadRequest)

	resp = do(t, app, "DELETE", "/api/admin/admins/ana-admin", "", tokenFor(t, superAdmin()))
	expectStatus(t, resp, fiber.StatusNoContent)
	if len(admins.deleted) != 1 || admins.deleted[0] != "ana-admin" {
		t.Fatalf("unexpected deletes: %v", admins.deleted)
	}
}
