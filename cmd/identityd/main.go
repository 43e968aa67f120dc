package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"

	"github.com/personalblog/identity"
)

type config struct {
	Addr           string `env:"IDENTITY_ADDR" envDefault:":8080"`
	DSN            string `env:"IDENTITY_DSN" envDefault:"file:identity.db"`
	SigningKey     string `env:"IDENTITY_SIGNING_KEY,required"`
	PasswordPepper string `env:"IDENTITY_PASSWORD_PEPPER,required"`
	FeatureCount   int    `env:"IDENTITY_FEATURE_COUNT" envDefault:"10"`
}

func (c config) GetSigningKey() string     { return c.SigningKey }
func (c config) GetPasswordPepper() string { return c.PasswordPepper }
func (c config) GetFeatureCount() int      { return c.FeatureCount }

func main() {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("parse env: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := identity.OpenDB(cfg.DSN)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := identity.RunMigrations(ctx, db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	repo := identity.NewRepositoryManager(db)
	repo.MustValidate()

	hasher := identity.NewKeyedHasher(cfg.GetPasswordPepper())
	users := identity.NewUserService(repo, hasher, cfg)
	tokens := identity.NewTokenService([]byte(cfg.GetSigningKey()), nil)
	auther := identity.NewAuthenticator(users, tokens)

	app := fiber.New()
	controller := identity.NewHTTPController(auther, users)
	controller.RegisterRoutes(app)

	go func() {
		<-ctx.Done()
		if err := app.Shutdown(); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatalf("listen: %v", err)
	}
}
