package http

import (
	"errors"
	"strings"

	"workplans/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authenticating reverse proxy in front of the
// service. Requests reaching this server are already authenticated.
const (
	userEmailHeader  = "X-Aker-User-Email"
	userGroupsHeader = "X-Aker-User-Groups"
)

var errNoIdentity = errors.New("request carries no user identity")

// userFromRequest builds the acting user from the identity headers. Groups
// are comma separated; empty entries are dropped.
func userFromRequest(ctx echo.Context) (kernel.User, error) {
	rawEmail := ctx.Request().Header.Get(userEmailHeader)
	if rawEmail == "" {
		return kernel.User{}, errNoIdentity
	}

	email, err := kernel.NewEmail(rawEmail)
	if err != nil {
		return kernel.User{}, err
	}

	var groups []string
	for _, group := range strings.Split(ctx.Request().Header.Get(userGroupsHeader), ",") {
		group = strings.TrimSpace(group)
		if group != "" {
			groups = append(groups, group)
		}
	}

	return kernel.NewUser(email, groups)
}
