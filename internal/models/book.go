package models

import "time"

// Book is a single catalog record.
type Book struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Author      string    `json:"author"`
	Year        int       `json:"publicationYear"`
	ISBN        string    `json:"isbn,omitempty"`        // 10 or 13 decimal digits
	Publisher   string    `json:"publisher,omitempty"`
	Category    string    `json:"category,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// BookPayload is the mutable subset of Book as it arrives in a request body.
// Pointer fields distinguish "absent" from "present but empty", which partial
// updates rely on.
type BookPayload struct {
	Title       *string `json:"title"`
	Author      *string `json:"author"`
	Year        *int    `json:"publicationYear"`
	ISBN        *string `json:"isbn"`
	Publisher   *string `json:"publisher"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}
