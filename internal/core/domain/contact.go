package domain

// Contact is an address-book entry scoped to the principal that created it.
type Contact struct {
	Meta      `bson:",inline"`
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
	Email     string `json:"email" bson:"email"`
	Phone     string `json:"phone" bson:"phone"`
	Address   string `json:"address,omitempty" bson:"address,omitempty"`
	Company   string `json:"company,omitempty" bson:"company,omitempty"`
	Notes     string `json:"notes,omitempty" bson:"notes,omitempty"`
}

func (c *Contact) Clone() *Contact {
	clone := *c
	return &clone
}
