// seed-users creates or updates one MANAGER and one SALES account.
//
// Usage:
//
//	DB_USER=... DB_PASSWORD=... DB_HOST=... DB_NAME=... \
//	SEED_MANAGER_PASSWORD=... SEED_SALES_PASSWORD=... go run ./cmd/seed-users
//
// Every value can also be given as a flag; flags win over env.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/mmdatafocus/daily_report_backend/config"
	"bitbucket.org/mmdatafocus/daily_report_backend/models"
	"bitbucket.org/mmdatafocus/daily_report_backend/repositories"
	"bitbucket.org/mmdatafocus/daily_report_backend/utils"
)

type seedAccount struct {
	Role     models.UserRole
	Name     string
	Email    string
	Password string
}

func main() {
	manager := seedAccount{Role: models.UserRoleManager}
	sales := seedAccount{Role: models.UserRoleSales}

	flag.StringVar(&manager.Name, "manager-name", envOr("SEED_MANAGER_NAME", "Manager"), "manager display name")
	flag.StringVar(&manager.Email, "manager-email", envOr("SEED_MANAGER_EMAIL", "manager@example.com"), "manager login email")
	flag.StringVar(&manager.Password, "manager-password", os.Getenv("SEED_MANAGER_PASSWORD"), "manager password (required)")
	flag.StringVar(&sales.Name, "sales-name", envOr("SEED_SALES_NAME", "Sales"), "salesperson display name")
	flag.StringVar(&sales.Email, "sales-email", envOr("SEED_SALES_EMAIL", "sales@example.com"), "salesperson login email")
	flag.StringVar(&sales.Password, "sales-password", os.Getenv("SEED_SALES_PASSWORD"), "salesperson password (required)")
	flag.Parse()

	for _, a := range []seedAccount{manager, sales} {
		if err := a.validate(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	settings := config.LoadSettings()
	db, err := config.ConnectDatabaseWithRetry(ctx, settings.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "database not reachable: %v\n", err)
		os.Exit(1)
	}
	users := repositories.NewUserRepository(db)

	for _, a := range []seedAccount{manager, sales} {
		created, err := seedUser(ctx, users, a)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to seed %s user %q: %v\n", a.Role, a.Email, err)
			os.Exit(1)
		}
		if created {
			fmt.Printf("Created %s user: email=%q\n", a.Role, a.Email)
		} else {
			fmt.Printf("Updated %s user: email=%q\n", a.Role, a.Email)
		}
	}
}

func (a seedAccount) validate() error {
	if strings.TrimSpace(a.Email) == "" {
		return fmt.Errorf("%s email is required", a.Role)
	}
	if a.Password == "" {
		return fmt.Errorf("%s password is required", a.Role)
	}
	if !a.Role.IsValid() {
		return fmt.Errorf("unknown role %q", a.Role)
	}
	return nil
}

// seedUser creates the account, or resets name, role and password when the email exists.
func seedUser(ctx context.Context, users models.UserRepository, a seedAccount) (bool, error) {
	hashed, err := utils.HashPassword(a.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	email := strings.TrimSpace(a.Email)

	existing, err := users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, utils.ErrorRecordNotFound) {
		return false, err
	}
	if existing == nil {
		u := &models.User{Name: a.Name, Email: email, PasswordHash: hashed, Role: a.Role}
		if err := users.Create(ctx, u); err != nil {
			return false, err
		}
		return true, nil
	}

	existing.Name = a.Name
	existing.Role = a.Role
	existing.PasswordHash = hashed
	return false, users.Update(ctx, existing)
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
