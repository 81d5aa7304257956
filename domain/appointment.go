// Package domain contains core concepts of the booking system.
// This file defines appointment requests.
// Requests have no status: they are appended and only read back by the shop.
package domain

import (
	"time"

	"github.com/google/uuid"
)

type Appointment struct {
	ID            uuid.UUID
	ShopID        Identity
	CustomerID    Identity // empty for anonymous submissions
	CustomerName  string
	CustomerPhone string
	Service       string
	Time          string // free text as typed by the customer
	CreatedAt     time.Time
}
