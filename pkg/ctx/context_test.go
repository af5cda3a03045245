package ctx_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appctx "github.com/shashiranjanraj/bookstore/pkg/ctx"
)

func TestSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Success(map[string]any{"id": 1})
		assert.Equal(t, http.StatusOK, c.WrittenStatus())
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":200,"data":{"id":1}}`, rec.Body.String())
}

type ratingInput struct {
	BookID string `json:"book_id" validate:"required"`
	Score  int    `json:"score"   validate:"required,between=1,5"`
}

func TestBindJSONValidationIs400(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(`{"book_id":"b","score":9}`))
	req.Header.Set("Content-Type", "application/json")

	appctx.Wrap(func(c *appctx.Context) {
		var in ratingInput
		assert.False(t, c.BindJSON(&in))
	})(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"score"`)
}

func TestBindJSONMalformed(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ratings", strings.NewReader(`{`))
	appctx.Wrap(func(c *appctx.Context) {
		var in ratingInput
		assert.False(t, c.BindJSON(&in))
	})(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

type loginInput struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
}

func TestBindPicksFormOrJSON(t *testing.T) {
	form := url.Values{"username": {"jane"}, "password": {"pw"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var got loginInput
	appctx.Wrap(func(c *appctx.Context) {
		require.True(t, c.Bind(&got))
	})(httptest.NewRecorder(), req)
	assert.Equal(t, loginInput{Username: "jane", Password: "pw"}, got)

	req = httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(`{"username":"joe","password":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	appctx.Wrap(func(c *appctx.Context) {
		require.True(t, c.Bind(&got))
	})(httptest.NewRecorder(), req)
	assert.Equal(t, "joe", got.Username)
}

func TestMultipartFormFile(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	require.NoError(t, mw.WriteField("title", "Dune"))
	fw, err := mw.CreateFormFile("image", "cover.png")
	require.NoError(t, err)
	_, _ = fw.Write([]byte("PNGDATA"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/books", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	appctx.Wrap(func(c *appctx.Context) {
		var in struct {
			Title string `form:"title" validate:"required"`
		}
		require.True(t, c.BindForm(&in))
		assert.Equal(t, "Dune", in.Title)

		data, hdr, ok, err := c.FormFile("image")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []byte("PNGDATA"), data)
		assert.Equal(t, "cover.png", hdr.Filename)

		_, _, ok, err = c.FormFile("pdf")
		require.NoError(t, err)
		assert.False(t, ok)
	})(httptest.NewRecorder(), req)
}

func TestData(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.4"))
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, "%PDF-1.4", rec.Body.String())
}

func TestJSONSkipsEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.JSON(http.StatusOK, map[string]string{"access_token": "t", "token_type": "bearer"})
	})(rec, httptest.NewRequest(http.MethodPost, "/token", nil))

	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"access_token":"t","token_type":"bearer"}`, rec.Body.String())
}
