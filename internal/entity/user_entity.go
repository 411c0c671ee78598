package entity

import "time"

// User identifiers are opaque strings owned by the identity provider.
// Profile fields are optional and filled in lazily by the planner flow.
type User struct {
	Id          string
	DisplayName string
	Level       string
	Target      string
	Hobby       string
	CreatedAt   time.Time
}
