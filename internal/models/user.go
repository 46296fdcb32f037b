package models

// Claim is a typed fact asserted about a user and embedded in issued tokens.
// Duplicate types are permitted (e.g. several "role" claims).
type Claim struct {
	Type  string `bson:"type" json:"type"`
	Value string `bson:"value" json:"value"`
}

// RoleUser is the built-in role seeded before any account is assigned to it.
const RoleUser = "User"

// UserRecord represents a stored account. Username and email are each
// globally unique; ID is immutable once assigned by the store.
type UserRecord struct {
	ID             string   `bson:"_id,omitempty" json:"id"`
	Username       string   `bson:"username" json:"username"`
	Email          string   `bson:"email" json:"email"`
	PasswordHash   string   `bson:"passwordHash" json:"-"`
	EmailConfirmed bool     `bson:"emailConfirmed" json:"emailConfirmed"`
	LockoutEnabled bool     `bson:"lockoutEnabled" json:"lockoutEnabled"`
	Roles          []string `bson:"roles" json:"roles"`
	Claims         []Claim  `bson:"claims" json:"claims"`
}
