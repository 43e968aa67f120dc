package identity

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Users is the user repository surface.
type Users interface {
	Repository[*User]

	AssignRole(ctx context.Context, userID, roleID uuid.UUID) error
	AssignRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error
	RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error
	RevokeRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error
}

type users struct {
	Repository[*User]
	db *bun.DB
}

var (
	_ Users             = (*users)(nil)
	_ Repository[*User] = (*users)(nil)
)

func NewUsersRepository(db *bun.DB) Users {
	repo := NewRepository[*User](db, ModelHandlers[*User]{
		NewRecord: func() *User { return &User{} },
		GetID: func(u *User) uuid.UUID {
			if u == nil {
				return uuid.Nil
			}
			return u.ID
		},
		SetID: func(u *User, id uuid.UUID) {
			if u != nil {
				u.ID = id
			}
		},
	})

	return &users{Repository: repo, db: db}
}

func (a *users) AssignRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return a.AssignRoleTx(ctx, a.db, userID, roleID)
}

// AssignRoleTx attaches a role association. Re-attaching an already held
// role is a no-op.
func (a *users) AssignRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	link := &UserRole{UserID: userID, RoleID: roleID}

	if _, err := tx.NewInsert().
		Model(link).
		On("CONFLICT DO NOTHING").
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not attach role")
	}

	return nil
}

func (a *users) RevokeRole(ctx context.Context, userID, roleID uuid.UUID) error {
	return a.RevokeRoleTx(ctx, a.db, userID, roleID)
}

func (a *users) RevokeRoleTx(ctx context.Context, tx bun.IDB, userID, roleID uuid.UUID) error {
	if _, err := tx.NewDelete().
		Model((*UserRole)(nil)).
		Where("user_id = ? AND role_id = ?", userID, roleID).
		Exec(ctx); err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "could not detach role")
	}

	return nil
}

// NewRolesRepository builds the role repository.
func NewRolesRepository(db *bun.DB) Repository[*Role] {
	return NewRepository[*Role](db, ModelHandlers[*Role]{
		NewRecord: func() *Role { return &Role{} },
		GetID: func(r *Role) uuid.UUID {
			if r == nil {
				return uuid.Nil
			}
			return r.ID
		},
		SetID: func(r *Role, id uuid.UUID) {
			if r != nil {
				r.ID = id
			}
		},
	})
}

// UserWithRoles eagerly loads the role associations of each selected user.
func UserWithRoles() SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Relation("Roles")
	}
}

// UserByName matches the unique login name.
func UserByName(name string) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.name = ?", name)
	}
}

// UserByCredentials matches name and password hash in one predicate so a
// name match alone can never short-circuit the credential check.
func UserByCredentials(name, passwordHash string) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.name = ? AND ?TableAlias.password_hash = ?", name, passwordHash)
	}
}

// UserByNameOrID matches either uniqueness factor, used by the duplicate
// check on add.
func UserByNameOrID(name string, id uuid.UUID) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.name = ? OR ?TableAlias.id = ?", name, id)
	}
}

// RoleByName matches the unique role name.
func RoleByName(name string) SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.name = ?", name)
	}
}
