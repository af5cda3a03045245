package controllers

import (
	"github.com/google/uuid"

	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/ctx"
	"github.com/shashiranjanraj/bookstore/pkg/resource"
)

type RatingController struct {
	ratings *services.RatingService
}

func NewRatingController(ratings *services.RatingService) *RatingController {
	return &RatingController{ratings: ratings}
}

type ratingRequest struct {
	BookID string `json:"book_id" validate:"required,uuid"`
	Score  int    `json:"score"   validate:"required,between=1,5"`
}

// Store handles POST /ratings. Rating a book again replaces the caller's
// earlier score.
func (h *RatingController) Store(c *ctx.Context) {
	p, ok := caller(c)
	if !ok {
		return
	}
	var in ratingRequest
	if !c.BindJSON(&in) {
		return
	}
	res, err := h.ratings.Submit(c.Context(), p.UserID, uuid.MustParse(in.BookID), in.Score)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(resource.Item(res, ratingResource))
}
