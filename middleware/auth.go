package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/salon-booking/models"
)

const (
	LocalAdminID        = "adminID"
	LocalRole           = "role"
	LocalProfessionalID = "professionalID"
)

// Protected verifies the bearer token and stores the admin's id, role and
// professional in locals.
func Protected(secret string) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(secret),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token",
				})
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid token claims",
				})
			}

			adminID, err := extractString(claims, "id")
			if err != nil {
				log.Warnw("rejected token", "error", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid admin ID in token",
				})
			}
			role, err := extractRole(claims)
			if err != nil {
				log.Warnw("rejected token", "error", err)
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": "Invalid role in token",
				})
			}
			professionalID, _ := extractString(claims, "professional_id")

			c.Locals(LocalAdminID, adminID)
			c.Locals(LocalRole, role)
			c.Locals(LocalProfessionalID, professionalID)
			return c.Next()
		},
	})
}

// CurrentAdmin rebuilds the authenticated admin from locals set by Protected.
func CurrentAdmin(c *fiber.Ctx) models.Admin {
	a := models.Admin{}
	a.ID, _ = c.Locals(LocalAdminID).(string)
	a.Role, _ = c.Locals(LocalRole).(string)
	if p, _ := c.Locals(LocalProfessionalID).(string); p != "" {
		a.ProfessionalID = &p
	}
	return a
}

func extractString(claims jwt.MapClaims, key string) (string, error) {
	switch v := claims[key].(type) {
	case string:
		if v == "" {
			return "", fmt.Errorf("empty %s in claims", key)
		}
		return v, nil
	case nil:
		return "", fmt.Errorf("no %s found in claims", key)
	default:
		return "", fmt.Errorf("unsupported %s type: %T", key, v)
	}
}

func extractRole(claims jwt.MapClaims) (string, error) {
	role, err := extractString(claims, "role")
	if err != nil {
		return "", err
	}
	if role != models.RoleAdmin && role != models.RoleSuperAdmin {
		return "", fmt.Errorf("unknown role %q", role)
	}
	return role, nil
}

func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
