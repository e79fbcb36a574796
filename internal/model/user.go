// Package model defines the response entities served by the API.
package model

import (
	"encoding/json"
	"time"
)

// User is a response-only user record. Nothing is stored; each value
// lives for the duration of one response.
type User struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	CreatedAt *Timestamp `json:"created_at,omitempty"`
}

// SeedUsers returns the fixed user list served by GET /api/users.
// A fresh slice is built on every call so callers cannot mutate shared state.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "John Doe", Email: "john@example.com"},
		{ID: 2, Name: "Jane Smith", Email: "jane@example.com"},
	}
}

// CreatedUserID is the id assigned to every created user.
// Ids are not allocated: every create answers with this value.
const CreatedUserID = 3

// CreatedUser is the record echoed back by POST /api/users.
// Name and Email hold the client's JSON values verbatim, whatever their type.
type CreatedUser struct {
	ID        int             `json:"id"`
	Name      json.RawMessage `json:"name"`
	Email     json.RawMessage `json:"email"`
	CreatedAt Timestamp       `json:"created_at"`
}

// NewCreatedUser builds the record echoed back by POST /api/users.
func NewCreatedUser(name, email json.RawMessage, now time.Time) CreatedUser {
	return CreatedUser{
		ID:        CreatedUserID,
		Name:      name,
		Email:     email,
		CreatedAt: NewTimestamp(now),
	}
}
