package domain

import "time"

// Meta carries the attributes shared by every record type: an opaque unique
// id, the owning principal for scoped resources, and lifecycle timestamps.
type Meta struct {
	ID        string    `json:"id" bson:"_id,omitempty"`
	OwnerID   string    `json:"ownerId,omitempty" bson:"owner_id,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// RecordMeta returns the embedded Meta, satisfying Record.
func (m *Meta) RecordMeta() *Meta { return m }

// Record is implemented by every resource entity. The type parameter is the
// concrete pointer type, so Clone preserves it.
type Record[T any] interface {
	RecordMeta() *Meta
	Clone() T
}

// Principal identifies the authenticated actor behind a request. The zero
// value represents an unauthenticated caller.
type Principal struct {
	UserID string
	Role   string
}

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }
