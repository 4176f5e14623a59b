package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"

	"github.com/fleettrack/fleettrack/application/port/inbound"
	"github.com/fleettrack/fleettrack/application/port/outbound"
	domainerr "github.com/fleettrack/fleettrack/domain/error"
	"github.com/fleettrack/fleettrack/domain/entity"
	"github.com/fleettrack/fleettrack/domain/query"
	"github.com/fleettrack/fleettrack/domain/valueobject"
	"github.com/fleettrack/fleettrack/infrastructure/adapter/postgres"
	"github.com/fleettrack/fleettrack/infrastructure/bootstrap"
	"github.com/fleettrack/fleettrack/infrastructure/config"
	"github.com/fleettrack/fleettrack/infrastructure/service/jwt"
	"github.com/fleettrack/fleettrack/infrastructure/service/password"
)

func main() {
	email := flag.String("email", "admin@fleettrack.local", "admin email")
	userPassword := flag.String("password", "", "admin password, at least 8 characters (optional)")
	name := flag.String("name", "Administrator", "display name")
	flag.Parse()

	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	structuredLogger := bootstrap.NewLogger(cfg, "fleettrack-create-admin")

	db, err := bootstrap.OpenDB(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer postgres.Close(db)

	passwords := password.NewBcryptPasswordService(0)
	app := bootstrap.New(db, bootstrap.Options{
		Passwords: passwords,
		Logger:    structuredLogger,
	})

	admin, created, err := ensureAdmin(ctx, app.Users, inbound.CreateUserRequest{
		Email:    *email,
		Name:     *name,
		Role:     string(valueobject.RoleAdmin),
		Password: *userPassword,
	})
	if err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}

	tokenService, err := jwt.NewJWTService(jwt.Config{
		Secret:         cfg.JWTSecret,
		Algorithm:      cfg.JWTAlgorithm,
		AccessTokenTTL: cfg.AccessTokenTTL,
		Issuer:         cfg.JWTIssuer,
	})
	if err != nil {
		log.Fatalf("Failed to initialize JWT service: %v", err)
	}
	token, err := tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID: admin.ID,
		Email:  admin.Email,
		Role:   string(admin.Role),
	})
	if err != nil {
		log.Fatalf("Failed to issue token: %v", err)
	}

	if created {
		fmt.Println("Admin user created")
	} else {
		fmt.Println("Admin user already exists")
		if *userPassword != "" && !passwords.Matches(admin.PasswordHash, *userPassword) {
			structuredLogger.Warn(ctx, "Existing admin password was not changed", map[string]interface{}{
				"user_id": admin.ID,
			})
		}
	}
	fmt.Printf("ID:    %s\n", admin.ID)
	fmt.Printf("Email: %s\n", admin.Email)
	fmt.Printf("Role:  %s\n", admin.Role)
	fmt.Printf("Token (valid %s):\n%s\n", cfg.AccessTokenTTL, token)
}

// ensureAdmin creates the user as the system principal, or returns the existing
// user with the same email.
func ensureAdmin(ctx context.Context, users inbound.EntityUseCase[entity.User, inbound.CreateUserRequest, inbound.UpdateUserRequest], req inbound.CreateUserRequest) (*entity.User, bool, error) {
	system := valueobject.SystemPrincipal()

	u, err := users.Create(ctx, system, req)
	if err == nil {
		return u, true, nil
	}
	if !errors.Is(err, domainerr.ErrConflict) {
		return nil, false, err
	}

	normalized := valueobject.NormalizeEmail(req.Email)
	page, err := users.List(ctx, system, query.PageRequest{
		Filters:    query.Filters{"search": normalized},
		Pagination: query.Pagination{Page: 1, Limit: 100},
	})
	if err != nil {
		return nil, false, err
	}
	for i := range page.Items {
		if page.Items[i].Email == normalized {
			return &page.Items[i], false, nil
		}
	}
	return nil, false, fmt.Errorf("user %s conflicts but could not be found", normalized)
}
