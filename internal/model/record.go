// Package model defines the catalog entities persisted on the device.
package model

import "time"

// TimestampLayout is the ISO-8601 layout used for every persisted timestamp.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Record holds the fields the entity store assigns to every entity.
type Record struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Meta exposes the record so generic collections can stamp it.
func (r *Record) Meta() *Record {
	return r
}

// FormatTimestamp renders t in TimestampLayout, normalized to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
