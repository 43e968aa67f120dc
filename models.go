package identity

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Common role names seeded by the blog platform.
const (
	RoleAdmin  = "Admin"
	RoleEditor = "Editor"
	RoleReader = "Reader"
)

// User is the identity record
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`
	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string     `bun:"name,notnull,unique" json:"name,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	Email         string     `bun:"email" json:"email,omitempty"`
	IsSubscribed  bool       `bun:"is_subscribed" json:"is_subscribed"`
	Weights       []float64  `bun:"weights,type:jsonb" json:"weights,omitempty"`
	Roles         []*Role    `bun:"m2m:user_roles,join:User=Role" json:"roles,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

var _ Identity = (*User)(nil)

// Identifier returns the unique login name.
func (u *User) Identifier() string {
	return u.Name
}

// RoleNames returns the attached role names. They are the sole source of
// authorization claims.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Roles))
	for _, r := range u.Roles {
		if r != nil {
			names = append(names, r.Name)
		}
	}
	return names
}

// Role is a named authorization grant.
type Role struct {
	bun.BaseModel `bun:"table:roles,alias:rol"`
	ID            uuid.UUID `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Name          string    `bun:"name,notnull,unique" json:"name,omitempty"`
}

// UserRole binds a user to a role. Registered with bun as the m2m join
// model so a user's roles expand in a single logical read.
type UserRole struct {
	bun.BaseModel `bun:"table:user_roles,alias:usrrol"`
	UserID        uuid.UUID `bun:"user_id,pk,type:uuid" json:"user_id,omitempty"`
	User          *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	RoleID        uuid.UUID `bun:"role_id,pk,type:uuid" json:"role_id,omitempty"`
	Role          *Role     `bun:"rel:belongs-to,join:role_id=id" json:"role,omitempty"`
}
