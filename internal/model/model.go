// Package model holds the types shared by every entity and the success
// envelopes written by the handlers.
package model

import "time"

// Base carries the columns every owned table has.
type Base struct {
	ID        int64     `json:"id" db:"id"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// Envelope is the success body for endpoints returning data.
type Envelope[T any] struct {
	Success bool `json:"success"`
	Data    T    `json:"data"`
}

// MessageEnvelope is the success body for endpoints returning a message.
type MessageEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
