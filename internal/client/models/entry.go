// Package models holds the journal API payloads as seen by the CLI.
package models

// Entry is a journal entry as returned by the API. CreatedAt is already
// rendered in the server's display zone.
type Entry struct {
	ID        int64   `json:"id"`
	Content   string  `json:"content"`
	Mood      *string `json:"mood"`
	CreatedAt string  `json:"created_at"`
}

// EntryInput is the body for creating or replacing an entry. An empty
// CreatedAt lets the server keep or assign the timestamp.
type EntryInput struct {
	Content   string  `json:"content"`
	Mood      *string `json:"mood,omitempty"`
	CreatedAt string  `json:"created_at,omitempty"`
}

// EntryPage is one page of the newest-first entry listing.
type EntryPage struct {
	Items   []Entry `json:"items"`
	Total   int64   `json:"total"`
	Page    int     `json:"page"`
	Size    int     `json:"size"`
	HasMore bool    `json:"has_more"`
}

// MoodOrDash renders the mood for tables.
func (e Entry) MoodOrDash() string {
	if e.Mood == nil || *e.Mood == "" {
		return "-"
	}
	return *e.Mood
}

type User struct {
	UserName  string `json:"username"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}
