package model

import (
	"time"
)

// Transfer records a completed movement of funds between two cards.
type Transfer struct {
	ID         int       `json:"id"`
	FromNumber string    `json:"from_number"`
	ToNumber   string    `json:"to_number"`
	Amount     int64     `json:"amount"`
	CreatedAt  time.Time `json:"created_at"`
}
