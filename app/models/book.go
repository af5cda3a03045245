package models

import "time"

// Book is a catalog entry. Image and PDF bytes live either on the row
// (ImageData, PDFData) or on a storage disk (ImageKey, PDFKey) depending on
// ASSET_DRIVER; HasImage and HasPDF are kept in step by the asset store.
type Book struct {
	Model
	Title         string    `gorm:"size:255;not null;index" json:"title"`
	Author        string    `gorm:"size:255;not null"       json:"author"`
	Price         float64   `gorm:"not null;default:0"      json:"price"`
	Description   string    `gorm:"type:text"               json:"description"`
	ImageData     []byte    `json:"-"`
	ImageType     string    `gorm:"size:100"                json:"image_type,omitempty"`
	ImageKey      string    `gorm:"size:100"                json:"-"`
	HasImage      bool      `gorm:"not null;default:false"  json:"has_image"`
	PDFData       []byte    `gorm:"column:pdf_data"         json:"-"`
	PDFKey        string    `gorm:"column:pdf_key;size:100" json:"-"`
	HasPDF        bool      `gorm:"column:has_pdf;not null;default:false" json:"has_pdf"`
	AverageRating float64   `gorm:"not null;default:0"      json:"average_rating"`
	RatingCount   int       `gorm:"not null;default:0"      json:"rating_count"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListColumns are the book columns without asset payloads, for listings.
var ListColumns = []string{
	"id", "title", "author", "price", "description", "image_type", "image_key",
	"has_image", "pdf_key", "has_pdf", "average_rating", "rating_count",
	"created_at", "updated_at",
}
