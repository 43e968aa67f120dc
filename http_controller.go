package identity

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserManager is the service surface the HTTP controller drives.
type UserManager interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByFilter(ctx context.Context, filter *UserFilter) ([]*User, error)
	Add(ctx context.Context, record *User, password string) error
	Update(ctx context.Context, record *User) error
	Remove(ctx context.Context, id uuid.UUID) error
	Subscribe(ctx context.Context, action bool, id uuid.UUID) error
	GrantRole(ctx context.Context, id uuid.UUID, roleName string) error
}

// HTTPController translates HTTP requests into identity operations and
// service errors into status codes. It holds no identity semantics of its
// own.
type HTTPController struct {
	auth   Authenticator
	users  UserManager
	logger Logger
}

type HTTPControllerOption func(*HTTPController) *HTTPController

func WithControllerLogger(logger Logger) HTTPControllerOption {
	return func(c *HTTPController) *HTTPController {
		if logger != nil {
			c.logger = logger
		}
		return c
	}
}

func NewHTTPController(auth Authenticator, users UserManager, opts ...HTTPControllerOption) *HTTPController {
	c := &HTTPController{
		auth:   auth,
		users:  users,
		logger: defLogger{},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.auth == nil {
		panic("Missing Authenticator in identity controller...")
	}

	if c.users == nil {
		panic("Missing UserManager in identity controller...")
	}

	return c
}

// RegisterRoutes mounts the identity endpoints on the app.
func (c *HTTPController) RegisterRoutes(app *fiber.App) {
	app.Post("/signin", c.SignIn)

	users := app.Group("/users")
	users.Post("/", c.Create)
	users.Get("/", c.List)
	users.Get("/:id", c.Show)
	users.Put("/:id", c.Replace)
	users.Delete("/:id", c.Delete)
	users.Put("/:id/subscription", c.Subscription)
	users.Post("/:id/roles", c.Grant)
}

// LoginRequest payload
type LoginRequest struct {
	Name     string `json:"name" form:"name"`
	Password string `json:"password" form:"password"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// CreateUserRequest payload
type CreateUserRequest struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Password     string `json:"password"`
	Email        string `json:"email"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func (r CreateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Password, validation.Required),
		validation.Field(&r.Email, is.Email),
	)
}

// UpdateUserRequest payload
type UpdateUserRequest struct {
	Name         string `json:"name"`
	PasswordHash string `json:"password_hash"`
	Email        string `json:"email"`
	IsSubscribed bool   `json:"is_subscribed"`
}

func (r UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Email, is.Email),
	)
}

// SubscriptionRequest payload
type SubscriptionRequest struct {
	Subscribed bool `json:"subscribed"`
}

// GrantRoleRequest payload
type GrantRoleRequest struct {
	Role string `json:"role"`
}

func (r GrantRoleRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Role, validation.Required),
	)
}

func (c *HTTPController) SignIn(ctx *fiber.Ctx) error {
	var req LoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "unable to parse payload")
	}

	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	token, err := c.auth.SignIn(ctx.Context(), req.Name, req.Password)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(fiber.Map{"token": token})
}

func (c *HTTPController) Create(ctx *fiber.Ctx) error {
	var req CreateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "unable to parse payload")
	}

	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record := &User{
		Name:         req.Name,
		Email:        req.Email,
		IsSubscribed: req.IsSubscribed,
	}

	if req.ID != "" {
		id, err := uuid.Parse(req.ID)
		if err != nil {
			return badRequest(ctx, "invalid user id")
		}
		record.ID = id
	}

	if err := c.users.Add(ctx.Context(), record, req.Password); err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.Status(fiber.StatusCreated).JSON(record)
}

func (c *HTTPController) List(ctx *fiber.Ctx) error {
	var filter UserFilter
	if err := ctx.QueryParser(&filter); err != nil {
		return badRequest(ctx, "unable to parse filter")
	}

	records, err := c.users.GetByFilter(ctx.Context(), &filter)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(records)
}

func (c *HTTPController) Show(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	record, err := c.users.GetByID(ctx.Context(), id)
	if err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.JSON(record)
}

func (c *HTTPController) Replace(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	var req UpdateUserRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "unable to parse payload")
	}

	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	record := &User{
		ID:           id,
		Name:         req.Name,
		PasswordHash: req.PasswordHash,
		Email:        req.Email,
		IsSubscribed: req.IsSubscribed,
	}

	if err := c.users.Update(ctx.Context(), record); err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *HTTPController) Delete(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	if err := c.users.Remove(ctx.Context(), id); err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *HTTPController) Subscription(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	var req SubscriptionRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "unable to parse payload")
	}

	if err := c.users.Subscribe(ctx.Context(), req.Subscribed, id); err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *HTTPController) Grant(ctx *fiber.Ctx) error {
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return badRequest(ctx, "invalid user id")
	}

	var req GrantRoleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return badRequest(ctx, "unable to parse payload")
	}

	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := c.users.GrantRole(ctx.Context(), id, req.Role); err != nil {
		return c.renderError(ctx, err)
	}

	return ctx.SendStatus(fiber.StatusNoContent)
}

func (c *HTTPController) renderError(ctx *fiber.Ctx, err error) error {
	status := statusFromError(err)
	if status == fiber.StatusInternalServerError {
		c.logger.Error("identity controller error: %v", err)
		return ctx.Status(status).JSON(fiber.Map{"error": "internal error"})
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(ctx *fiber.Ctx, msg string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func statusFromError(err error) int {
	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		switch rich.Category {
		case goerrors.CategoryNotFound:
			return fiber.StatusNotFound
		case goerrors.CategoryConflict:
			return fiber.StatusConflict
		case goerrors.CategoryAuth:
			return fiber.StatusUnauthorized
		case goerrors.CategoryBadInput, goerrors.CategoryValidation:
			return fiber.StatusBadRequest
		}
	}
	return fiber.StatusInternalServerError
}
