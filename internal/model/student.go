package model

import "time"

type StudentStatus string

const (
	StudentActive   StudentStatus = "active"
	StudentDisabled StudentStatus = "disabled"
)

// swagger:model Student
type Student struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Password     string        `json:"password,omitempty"` // bcrypt hash, stripped from API responses
	RegisteredAt time.Time     `json:"registered_at"`
	Status       StudentStatus `json:"status"`
}

// Public returns a copy safe to hand to API clients.
func (s Student) Public() Student {
	s.Password = ""
	return s
}
