package identity

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserService implements the identity use cases: lookup, credential check,
// create, update, remove, subscription toggle, and role grants. Entity
// specific logic composes over the generic Service rather than replacing it.
type UserService struct {
	*Service[*User, *UserFilter]
	repo         RepositoryManager
	hasher       PasswordHasher
	featureCount int
	logger       Logger
}

// NewUserService wires the service to its repositories, hasher, and the
// configured feature count. The feature count is read once here; users
// created afterwards keep the vector length they were created with even if
// configuration changes.
func NewUserService(repo RepositoryManager, hasher PasswordHasher, cfg Config) *UserService {
	return &UserService{
		Service:      NewService[*User, *UserFilter](repo.Users(), repo, nil),
		repo:         repo,
		hasher:       hasher,
		featureCount: cfg.GetFeatureCount(),
		logger:       defLogger{},
	}
}

func (s *UserService) WithLogger(logger Logger) *UserService {
	if logger != nil {
		s.logger = logger
		s.Service.logger = logger
	}
	return s
}

// GetByID returns the user with role associations expanded.
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.Service.GetByID(ctx, id, UserWithRoles())
}

// GetByCredentials hashes the supplied password once and matches name and
// hash in a single predicate. A missing name and a wrong password are
// indistinguishable: both are NotFound.
func (s *UserService) GetByCredentials(ctx context.Context, name, password string) (*User, error) {
	hash := s.hasher.Hash(password)
	return s.repo.Users().GetOne(ctx, UserByCredentials(name, hash), UserWithRoles())
}

// Add creates a user: uniqueness check on name or id first, then the
// password is hashed and the weights vector zeroed to the configured feature
// count, then one insert and one commit. The unique index on users.name
// backstops the check under concurrent adds.
func (s *UserService) Add(ctx context.Context, record *User, password string) error {
	if record == nil {
		return ErrInvalidArgument
	}

	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		_, err := s.repo.Users().GetOneTx(ctx, tx, UserByNameOrID(record.Name, record.ID))
		if err == nil {
			return ErrDuplicateName
		}
		if !IsNotFound(err) {
			return err
		}

		record.PasswordHash = s.hasher.Hash(password)
		record.Weights = make([]float64, s.featureCount)

		_, err = s.repo.Users().AddTx(ctx, tx, record)
		return err
	})
}

// Update overwrites name, password hash, email, and subscription state.
// Weights and role associations are never touched by a full update.
func (s *UserService) Update(ctx context.Context, record *User) error {
	if record == nil {
		return ErrInvalidArgument
	}

	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		entity, err := s.repo.Users().GetByIDTx(ctx, tx, record.ID)
		if err != nil {
			return err
		}

		entity.Name = record.Name
		entity.PasswordHash = record.PasswordHash
		entity.Email = record.Email
		entity.IsSubscribed = record.IsSubscribed

		_, err = s.repo.Users().UpdateTx(ctx, tx, entity,
			WithColumns("name", "password_hash", "email", "is_subscribed"))
		return err
	})
}

// Subscribe flips only the subscription flag. It deliberately bypasses
// Update's full overwrite so stale caller data cannot clobber other fields.
func (s *UserService) Subscribe(ctx context.Context, action bool, id uuid.UUID) error {
	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		entity, err := s.repo.Users().GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		entity.IsSubscribed = action

		_, err = s.repo.Users().UpdateTx(ctx, tx, entity, WithColumns("is_subscribed"))
		return err
	})
}

// GrantRole attaches roleName to the user, creating the role record when it
// does not exist yet. Attached role names become authorization claims on the
// next issued token.
func (s *UserService) GrantRole(ctx context.Context, id uuid.UUID, roleName string) error {
	return s.repo.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		user, err := s.repo.Users().GetByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}

		role, err := s.repo.Roles().GetOneTx(ctx, tx, RoleByName(roleName))
		if IsNotFound(err) {
			role, err = s.repo.Roles().AddTx(ctx, tx, &Role{Name: roleName})
		}
		if err != nil {
			return err
		}

		return s.repo.Users().AssignRoleTx(ctx, tx, user.ID, role.ID)
	})
}
