// Command createadmin seeds an admin profile so the console has a first
// sign-in. Run once per environment:
//
//	createadmin -email owner@example.com -password '...'
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"atelier/config"
	"atelier/internal/domain/entity"
	"atelier/internal/infra/auth"
	"atelier/internal/infra/persistence/postgres"

	pgLib "github.com/slighter12/go-lib/database/postgres"
)

func main() {
	email := flag.String("email", "", "admin login email")
	password := flag.String("password", "", "admin login password")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "both -email and -password are required")
		os.Exit(2)
	}

	if err := run(*email, *password); err != nil {
		fmt.Fprintln(os.Stderr, "createadmin:", err)
		os.Exit(1)
	}

	fmt.Println("admin profile created for", *email)
}

func run(email, password string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	hash, err := auth.NewBcryptHasher().Hash(password)
	if err != nil {
		return err
	}

	profile := &entity.Profile{
		Email:        email,
		Role:         entity.RoleAdmin,
		PasswordHash: hash,
	}

	return postgres.NewProfileRepository(db).Create(context.Background(), profile)
}
