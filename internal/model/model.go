package model

import "time"

// RecentFile is a path the user opened or saved, newest first in listings.
type RecentFile struct {
	Path     string    `json:"path"`
	LastUsed time.Time `json:"lastUsed"`
	Opens    int       `json:"opens"`
}
