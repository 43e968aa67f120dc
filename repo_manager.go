package identity

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/uptrace/bun"
)

// TransactionManager is the unit of work boundary. The callback runs inside
// a single transaction: a nil return commits every staged mutation
// atomically, an error return propagates and leaves prior committed state
// unchanged. There is no explicit rollback API.
type TransactionManager interface {
	RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error
}

type Validator interface {
	Validate() error
	MustValidate()
}

// RepositoryManager exposes all identity repositories
type RepositoryManager interface {
	Validator
	TransactionManager
	Users() Users
	Roles() Repository[*Role]
}

type mngr struct {
	db    *bun.DB
	users Users
	roles Repository[*Role]
}

func NewRepositoryManager(db *bun.DB) RepositoryManager {
	return &mngr{
		db:    db,
		users: NewUsersRepository(db),
		roles: NewRolesRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.roles == nil {
		return errors.New("repository roles should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() Users {
	return m.users
}

func (m mngr) Roles() Repository[*Role] {
	return m.roles
}
