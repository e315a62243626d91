package models

import "time"

// User is the account record shared by every storage backend. ID is the
// backend-native identifier rendered as a string, so a Mongo ObjectID hex,
// a decimal SQL primary key and a Redis counter all travel the same way.
type User struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Password   string    `json:"-"`
	Height     *float64  `json:"height"`
	Weight     *float64  `json:"weight"`
	Age        *int      `json:"age"`
	BloodGroup *string   `json:"bloodGroup"`
	Allergies  *string   `json:"allergies"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// ProfileUpdate carries the mutable profile fields. Nil fields are written
// through as NULL, matching the replace-all semantics of the profile form.
type ProfileUpdate struct {
	Height     *float64 `json:"height"`
	Weight     *float64 `json:"weight"`
	Age        *int     `json:"age"`
	BloodGroup *string  `json:"bloodGroup"`
	Allergies  *string  `json:"allergies"`
}
