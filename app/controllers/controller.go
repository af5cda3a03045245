// Package controllers adapts HTTP requests to service calls. Every handler
// binds its input, calls one service method and hands errors to fail.
package controllers

import (
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

// fail maps a service error onto a status code. Unknown errors are logged
// and reported as 500 without detail.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrInvalidCredentials):
		c.Error(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		c.Unauthorized(err.Error())
	case errors.Is(err, services.ErrForbidden):
		c.Error(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		c.Error(http.StatusNotFound, err.Error())
	default:
		logger.WithCtx(c.Context()).Error("request failed", "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// idParam parses a UUID path parameter. A malformed ID cannot name a row,
// so it is answered with 404.
func idParam(c *ctx.Context, name, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.Error(http.StatusNotFound, what+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// caller returns the authenticated principal. Routes using it sit behind
// middleware.Authenticate.
func caller(c *ctx.Context) (auth.Principal, bool) {
	p, ok := c.Principal()
	if !ok {
		c.Unauthorized("Not authenticated")
	}
	return p, ok
}
