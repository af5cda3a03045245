// Package ctx gives handlers a single request context with helpers for
// params, binding and envelope responses:
//
//	func (h *BookController) Show(c *ctx.Context) {
//	    book, err := h.books.Get(c.Context(), c.Param("id"))
//	    ...
//	    c.Success(book)
//	}
//
//	router.Get("/books/{id}", "books.show", ctx.Wrap(h.Show))
package ctx

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/bind"
	"github.com/shashiranjanraj/bookstore/pkg/response"
	"github.com/shashiranjanraj/bookstore/pkg/validate"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// Context wraps a request/response pair.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	status int
}

var pool = sync.Pool{
	New: func() any { return &Context{} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter.
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// Query returns a query-string value. Returns "" if not present.
func (c *Context) Query(key string) string {
	return c.R.URL.Query().Get(key)
}

// QueryInt returns a query-string value as an int, or def when absent or invalid.
func (c *Context) QueryInt(key string, def int) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return n
}

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Principal returns the authenticated caller. Routes behind the auth
// middleware always have one.
func (c *Context) Principal() (auth.Principal, bool) {
	return auth.PrincipalFrom(c.R.Context())
}

// ─── Binding / Validation ─────────────────────────────────────────────────────

// BindJSON decodes the JSON body into dest and runs validation. On failure it
// sends a 400 and returns false.
func (c *Context) BindJSON(dest any) bool {
	errs, err := bind.JSON(c.R, dest)
	return c.bound(errs, err)
}

// BindForm fills dest from a urlencoded or multipart form using `form` tags
// and runs validation. On failure it sends a 400 and returns false.
func (c *Context) BindForm(dest any) bool {
	errs, err := bind.Form(c.R, dest)
	return c.bound(errs, err)
}

// Bind picks BindJSON for JSON bodies and BindForm otherwise.
func (c *Context) Bind(dest any) bool {
	if bind.IsJSON(c.R) {
		return c.BindJSON(dest)
	}
	return c.BindForm(dest)
}

func (c *Context) bound(errs map[string]string, err error) bool {
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return false
	}
	if validate.HasErrors(errs) {
		c.ValidationError(errs)
		return false
	}
	return true
}

// FormFile reads an uploaded file completely. ok is false when the field is
// absent. The form must already be parsed by BindForm.
func (c *Context) FormFile(field string) (data []byte, header *multipart.FileHeader, ok bool, err error) {
	f, header, err := c.R.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil, false, nil
	}
	if err != nil {
		return nil, nil, false, err
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, nil, false, fmt.Errorf("read %s: %w", field, err)
	}
	return data, header, true, nil
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// Success sends a 200 JSON envelope: {"status":200,"data":...}
func (c *Context) Success(data any) {
	c.status = http.StatusOK
	response.Success(c.W, data)
}

// Created sends a 201 JSON envelope.
func (c *Context) Created(data any) {
	c.status = http.StatusCreated
	response.Created(c.W, data)
}

// NoContent sends a bare 204.
func (c *Context) NoContent() {
	c.status = http.StatusNoContent
	c.W.WriteHeader(http.StatusNoContent)
}

// Error sends a JSON error envelope with the given status and message.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// ValidationError sends a 400 with field-level errors.
func (c *Context) ValidationError(errs map[string]string) {
	c.status = http.StatusBadRequest
	response.ValidationError(c.W, errs)
}

// Unauthorized sends a 401 with a bearer challenge.
func (c *Context) Unauthorized(message string) {
	c.status = http.StatusUnauthorized
	response.Unauthorized(c.W, message)
}

// JSON writes v as a bare JSON body, outside the envelope.
func (c *Context) JSON(code int, v any) {
	c.status = code
	c.W.Header().Set("Content-Type", "application/json")
	c.W.WriteHeader(code)
	json.NewEncoder(c.W).Encode(v) //nolint:errcheck
}

// Data writes raw bytes with the given content type.
func (c *Context) Data(code int, contentType string, body []byte) {
	c.W.Header().Set("Content-Type", contentType)
	c.W.Header().Set("Content-Length", strconv.Itoa(len(body)))
	c.W.WriteHeader(code)
	c.status = code
	c.W.Write(body) //nolint:errcheck
}

// WrittenStatus returns the status written so far, or 0.
func (c *Context) WrittenStatus() int { return c.status }
