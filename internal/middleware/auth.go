package middleware

import (
	"os"
	"strings"

	"github.com/Footprint-meow/Footprint-BackEnd/internal/httpx"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	MemberID string `json:"member_id"`
	jwt.RegisteredClaims
}

func tokenFromRequest(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader != "" {
		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	return c.Cookies("fp_access")
}

func parseMemberID(tokenString string) (string, bool) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.MemberID == "" {
		return "", false
	}
	return claims.MemberID, true
}

// AuthRequired rejects requests without a valid member token.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			return httpx.Unauthorized(c, "missing_access_token", "Missing access token")
		}
		memberID, ok := parseMemberID(tokenString)
		if !ok {
			return httpx.Unauthorized(c, "invalid_access_token", "Invalid or expired token")
		}
		c.Locals("memberID", memberID)
		return c.Next()
	}
}

// AuthOptional extracts the caller's member id when a valid token is
// present and continues without one otherwise. Footprint authorization
// treats an absent identity as a normal input, so a missing or broken
// token is never an error here.
func AuthOptional() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if memberID, ok := parseMemberID(tokenString); ok {
				c.Locals("memberID", memberID)
			}
		}
		return c.Next()
	}
}
