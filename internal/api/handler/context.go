package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// identity is the caller identity decoded from the JWT by the Auth middleware.
type identity struct {
	Username  string
	UserID    int64
	Role      string
	JTI       string
	ExpiresAt int64
}

// ctxIdentity extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call: username and user id
// must both be present (presence proves the middleware ran).
func ctxIdentity(c echo.Context) (identity, error) {
	username, _ := c.Get("username").(string)
	userID, idOK := c.Get("user_id").(int64)
	if username == "" || !idOK {
		return identity{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	role, _ := c.Get("role").(string)
	jti, _ := c.Get("jti").(string)
	exp, _ := c.Get("token_exp").(int64)

	return identity{
		Username:  username,
		UserID:    userID,
		Role:      role,
		JTI:       jti,
		ExpiresAt: exp,
	}, nil
}
