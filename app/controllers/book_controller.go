package controllers

import (
	"net/http"
	"strings"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/resource"
)

type BookController struct {
	catalog *services.CatalogService
	access  *services.AccessService
}

func NewBookController(catalog *services.CatalogService, access *services.AccessService) *BookController {
	return &BookController{catalog: catalog, access: access}
}

// Index handles GET /books.
func (h *BookController) Index(c *ctx.Context) {
	books, err := h.catalog.List(c.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Collection(books, bookResource))
}

// Show handles GET /books/{id}.
func (h *BookController) Show(c *ctx.Context) {
	id, ok := idParam(c, "id", "book")
	if !ok {
		return
	}
	book, err := h.catalog.Get(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(book, bookResource))
}

type bookForm struct {
	Title       string   `form:"title"       validate:"required,max=255"`
	Author      string   `form:"author"      validate:"required,max=255"`
	Price       *float64 `form:"price"       validate:"nullable,gte=0"`
	Description string   `form:"description"`
}

// Store handles POST /books, a multipart form with an image and an
// optional pdf.
func (h *BookController) Store(c *ctx.Context) {
	var in bookForm
	if !c.BindForm(&in) {
		return
	}
	if in.Price == nil {
		c.ValidationError(map[string]string{"price": "The price field is required."})
		return
	}

	image, ok := h.upload(c, "image", true)
	if !ok {
		return
	}
	if image == nil {
		c.ValidationError(map[string]string{"image": "The image field is required."})
		return
	}
	pdf, ok := h.upload(c, "pdf", false)
	if !ok {
		return
	}

	book, err := h.catalog.Create(c.Context(), services.NewBook{
		Title:       in.Title,
		Author:      in.Author,
		Price:       *in.Price,
		Description: in.Description,
		Image:       image,
		PDF:         pdf,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Created(resource.Item(book, bookResource))
}

// upload reads an optional multipart file. A nil asset means the field was
// absent; ok is false once a response has been sent. With sniff set, a
// missing or generic declared type is replaced by the detected one.
func (h *BookController) upload(c *ctx.Context, field string, sniff bool) (*services.Asset, bool) {
	data, header, present, err := c.FormFile(field)
	if err != nil {
		c.Error(http.StatusBadRequest, err.Error())
		return nil, false
	}
	if !present || len(data) == 0 {
		return nil, true
	}
	contentType := header.Header.Get("Content-Type")
	if sniff && (contentType == "" || contentType == "application/octet-stream") {
		contentType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = strings.TrimSpace(contentType[:i])
	}
	return &services.Asset{Data: data, ContentType: contentType}, true
}

type bookUpdate struct {
	Title       *string  `json:"title"       validate:"nullable,max=255"`
	Author      *string  `json:"author"      validate:"nullable,max=255"`
	Price       *float64 `json:"price"       validate:"nullable,gte=0"`
	Description *string  `json:"description"`
}

// Update handles PUT /books/{id}. Omitted fields keep their value.
func (h *BookController) Update(c *ctx.Context) {
	id, ok := idParam(c, "id", "book")
	if !ok {
		return
	}
	var in bookUpdate
	if !c.BindJSON(&in) {
		return
	}
	book, err := h.catalog.Update(c.Context(), id, services.BookChanges{
		Title:       in.Title,
		Author:      in.Author,
		Price:       in.Price,
		Description: in.Description,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(book, bookResource))
}

// Destroy handles DELETE /books/{id}.
func (h *BookController) Destroy(c *ctx.Context) {
	id, ok := idParam(c, "id", "book")
	if !ok {
		return
	}
	if err := h.catalog.Delete(c.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"message": "Book deleted"})
}

// Image handles GET /books/{id}/image.
func (h *BookController) Image(c *ctx.Context) {
	id, ok := idParam(c, "id", "book")
	if !ok {
		return
	}
	img, err := h.catalog.Image(c.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Data(http.StatusOK, img.ContentType, img.Data)
}

// PDF handles GET /books/{id}/pdf for callers who paid.
func (h *BookController) PDF(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id", "book")
	if !ok {
		return
	}
	pdf, err := h.catalog.PDF(c.Context(), p.UserID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.W.Header().Set("Content-Disposition", `inline; filename="`+id.String()+`.pdf"`)
	c.Data(http.StatusOK, pdf.ContentType, pdf.Data)
}

// Access handles GET /books/{id}/access.
func (h *BookController) Access(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "id", "book")
	if !ok {
		return
	}
	has, err := h.access.HasAccess(c.Context(), p.UserID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"has_access": has})
}

// Pay handles POST /pay/{book_id}. Paying again is not an error.
func (h *BookController) Pay(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	id, ok := idParam(c, "book_id", "book")
	if !ok {
		return
	}
	payment, err := h.access.Pay(c.Context(), p.UserID, id)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(payment, paymentResource))
}
