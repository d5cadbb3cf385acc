// Package models defines server-side data models persisted in the database.
package models

import "time"

// Entry is one journal record. CreatedAt is always held in UTC; conversion
// to the presentation zone happens at the API boundary.
type Entry struct {
	ID        int64
	Content   string
	Mood      *string
	CreatedAt time.Time
}

// EntryPage is one page of entries, newest first.
type EntryPage struct {
	Items   []*Entry
	Total   int64
	Page    int
	Size    int
	HasMore bool
}
