package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/meinhoongagan/salon-booking/middleware"
	"github.com/meinhoongagan/salon-booking/models"
)

const testSecret = "test-secret"

func do(t *testing.T, app *fiber.App, method, path, body, token string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func expectStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("expected status %d, got %d: %s", want, resp.StatusCode, body)
	}
}

func tokenFor(t *testing.T, a models.Admin) string {
	t.Helper()
	token, err := middleware.GenerateToken(testSecret, a, time.Now())
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	return token
}

func superAdmin() models.Admin {
	return models.Admin{ID: "root", Email: "root@salon.test", Role: models.RoleSuperAdmin}
}

func plainAdmin(professionalID string) models.Admin {
	return models.Admin{ID: "ana-admin", Email: "ana@salon.test", Role: models.RoleAdmin, ProfessionalID: &professionalID}
}
