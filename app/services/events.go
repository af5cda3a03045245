package services

import "github.com/google/uuid"

// Payloads fired through pkg/event after the owning transaction commits.

type BookChanged struct {
	BookID uuid.UUID
	Action string // "created" | "updated" | "deleted"
}

type OrderPlaced struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Items   int
	Total   float64
}

type OrderAdvanced struct {
	OrderID uuid.UUID
	From    string
	To      string
}

type PaymentRecorded struct {
	UserID uuid.UUID
	BookID uuid.UUID
}

type RatingSubmitted struct {
	UserID  uuid.UUID
	BookID  uuid.UUID
	Score   int
	Average float64
	Count   int
}

type AccessDenied struct {
	UserID uuid.UUID
	BookID uuid.UUID
}
