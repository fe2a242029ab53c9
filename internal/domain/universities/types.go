package universities

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("university not found")

type University struct {
	ID              int64     `json:"id"`
	UserID          *string   `json:"userId,omitempty"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Website         string    `json:"website,omitempty"`
	EstablishedYear int       `json:"establishedYear,omitempty"`
	StudentCount    int       `json:"studentCount,omitempty"`
	FacultyCount    int       `json:"facultyCount,omitempty"`
	Programs        []string  `json:"programs,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
