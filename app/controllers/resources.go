package controllers

import (
	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/services"
	"github.com/shashiranjanraj/bookstore/pkg/resource"
)

func userResource(u models.User) resource.Map {
	return resource.Map{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}

func bookResource(b models.Book) resource.Map {
	base := "/books/" + b.ID.String()
	links := resource.Map{"self": base}
	if b.HasImage {
		links["image"] = base + "/image"
	}
	if b.HasPDF {
		links["pdf"] = base + "/pdf"
	}
	return resource.Map{
		"id":             b.ID,
		"title":          b.Title,
		"author":         b.Author,
		"price":          b.Price,
		"description":    b.Description,
		"has_image":      b.HasImage,
		"has_pdf":        b.HasPDF,
		"average_rating": b.AverageRating,
		"rating_count":   b.RatingCount,
		"created_at":     b.CreatedAt,
		"updated_at":     b.UpdatedAt,
		"links":          links,
	}
}

func orderResource(o models.Order) resource.Map {
	return resource.Map{
		"id":         o.ID,
		"user_id":    o.UserID,
		"status":     o.Status,
		"total":      o.Total,
		"created_at": o.CreatedAt,
		"items":      resource.Collection(o.Items, orderItemResource),
	}
}

func orderItemResource(it models.OrderItem) resource.Map {
	return resource.Map{
		"book_id":  it.BookID,
		"title":    it.Title,
		"price":    it.Price,
		"quantity": it.Quantity,
	}
}

func cartItemResource(it models.CartItem) resource.Map {
	return resource.Map{
		"book_id":  it.BookID,
		"quantity": it.Quantity,
	}
}

func ratingResource(r services.RatingResult) resource.Map {
	return resource.Map{
		"id":             r.Rating.ID,
		"book_id":        r.Rating.BookID,
		"score":          r.Rating.Score,
		"average_rating": r.AverageRating,
		"rating_count":   r.RatingCount,
	}
}

func paymentResource(p models.Payment) resource.Map {
	return resource.Map{
		"id":         p.ID,
		"book_id":    p.BookID,
		"created_at": p.CreatedAt,
	}
}
