package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/taskhive/todo-api/internal/core/ports"
)

// Auth validates the bearer JWT and injects identity claims into context.
//
// A token is accepted only when it is HS256-signed with the service secret,
// carries an exp claim that has not passed, carries both sub and id, and has
// not been revoked. Every token failure is the same 401: callers cannot
// distinguish tampering from expiry. A revocation-store failure is not a
// token failure and propagates to the error handler as a server error.
func Auth(jwtSecret string, revoker ports.TokenRevoker) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims := jwt.MapClaims{}
			tkn, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
				if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(jwtSecret), nil
			}, jwt.WithExpirationRequired())
			if err != nil || !tkn.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			username, _ := claims["sub"].(string)
			idf, idOK := claims["id"].(float64)
			if username == "" || !idOK {
				return echo.NewHTTPError(http.StatusUnauthorized, "token missing identity claims")
			}

			jti, _ := claims["jti"].(string)
			if revoker != nil && jti != "" {
				revoked, err := revoker.IsRevoked(c.Request().Context(), jti)
				if err != nil {
					// Infrastructure fault, not a credential problem.
					return err
				}
				if revoked {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
			}

			role, _ := claims["role"].(string)
			var expiresAt int64
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				expiresAt = exp.Unix()
			}

			c.Set("username", username)
			c.Set("user_id", int64(idf))
			c.Set("role", role)
			c.Set("jti", jti)
			c.Set("token_exp", expiresAt)

			return next(c)
		}
	}
}
