package models

import "time"

// Session marks which user is logged in on this device. At most one session
// is active at any time; creating a new one deactivates the rest.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}
