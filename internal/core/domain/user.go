package domain

// User is a registered account. It is the one resource without ownership
// scoping: reads are public, updates require authentication, and deletion
// additionally requires the admin role. The password hash never serializes.
type User struct {
	Meta         `bson:",inline"`
	Name         string `json:"name" bson:"name"`
	Email        string `json:"email" bson:"email"`
	Age          int    `json:"age" bson:"age"`
	Role         string `json:"role" bson:"role"`
	PasswordHash string `json:"-" bson:"password_hash"`
}

func (u *User) Clone() *User {
	clone := *u
	return &clone
}
