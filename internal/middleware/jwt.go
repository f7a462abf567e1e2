package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sixphrase/slot-reservation/internal/auth"
)

// principalKey is the context key under which JWTAuth stores the resolved
// caller.  Handlers read it back through PrincipalFrom.
const principalKey = "principal"

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and resolves its claims into an auth.Principal stored on the request
// context.  The provided secret must match the one used when issuing
// tokens.  The raw role claim is additionally stored under "role" for
// RequireRole.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			// Parse with HS256 only; any other signing method is rejected.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			p := auth.Principal{
				UserID:       claimUint64(claims, "sub"),
				DepartmentID: claimUint64(claims, "dept"),
			}
			if role, ok := claims["role"].(string); ok {
				p.Role = role
			}
			if p.UserID == 0 || p.Role == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			c.Set(principalKey, p)
			c.Set("role", p.Role)
			return next(c)
		}
	}
}

// PrincipalFrom returns the Principal stored by JWTAuth.  The second return
// is false on routes that were not wrapped by JWTAuth.
func PrincipalFrom(c echo.Context) (auth.Principal, bool) {
	p, ok := c.Get(principalKey).(auth.Principal)
	return p, ok
}

// claimUint64 reads a numeric claim.  encoding/json decodes JWT numbers as
// float64, so that is the case that matters; the string fallback covers
// tokens minted by other issuers.
func claimUint64(claims jwt.MapClaims, key string) uint64 {
	switch v := claims[key].(type) {
	case float64:
		if v < 0 {
			return 0
		}
		return uint64(v)
	case string:
		var n uint64
		for _, r := range v {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + uint64(r-'0')
		}
		return n
	}
	return 0
}
