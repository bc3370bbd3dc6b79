package model

import "time"

// Application is one persisted intake submission. Values is keyed by column
// and holds the scalar inputs and resolved file URLs; a nil value is NULL.
type Application struct {
	ID        string
	UserID    string
	Service   string
	Table     string
	Values    map[string]any
	CreatedAt time.Time
}

// Row is a generic result row keyed by column name.
type Row map[string]any

func (r Row) ID() string {
	switch v := r["id"].(type) {
	case string:
		return v
	case []byte:
		return string(v)
	}
	return ""
}
