package middleware

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/meinhoongagan/salon-booking/models"
)

const TokenTTL = 24 * time.Hour

// GenerateToken signs an access token for a.
func GenerateToken(secret string, a models.Admin, now time.Time) (string, error) {
	claims := jwt.MapClaims{
		"id":    a.ID,
		"email": a.Email,
		"role":  a.Role,
		"exp":   now.Add(TokenTTL).Unix(),
	}
	if a.ProfessionalID != nil {
		claims["professional_id"] = *a.ProfessionalID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
