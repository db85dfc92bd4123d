package entity

import "time"

// Setting is one persisted key/value pair (assistant display name, avatar
// image data URI). Whole-value overwrite semantics.
type Setting struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}
