package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
)

func TestFailMapsErrors(t *testing.T) {
	cases := []struct {
		err  error
		code int
		msg  string
	}{
		{fmt.Errorf("%w: title is required", services.ErrValidation), http.StatusBadRequest, "validation failed: title is required"},
		{fmt.Errorf("username %w", services.ErrConflict), http.StatusBadRequest, "username already exists"},
		{services.ErrInvalidCredentials, http.StatusBadRequest, "incorrect username or password"},
		{services.ErrUnauthenticated, http.StatusUnauthorized, "not authenticated"},
		{fmt.Errorf("%w: payment required", services.ErrForbidden), http.StatusForbidden, "forbidden: payment required"},
		{fmt.Errorf("book %w", services.ErrNotFound), http.StatusNotFound, "book not found"},
		{errors.New("disk on fire"), http.StatusInternalServerError, "Internal Server Error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		ctx.Wrap(func(c *ctx.Context) { fail(c, tc.err) })(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, tc.code, rec.Code, tc.err.Error())
		assert.Contains(t, rec.Body.String(), tc.msg)
	}
}

func TestIDParamRejectsMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	ctx.Wrap(func(c *ctx.Context) {
		_, ok := idParam(c, "id", "order")
		assert.False(t, ok)
	})(rec, httptest.NewRequest(http.MethodGet, "/orders/x", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "order not found")
}
