// cmd/adduser/main.go
// Creates or updates a user in the database.
//
// Usage:
//
//	go run ./cmd/adduser -username alice -email alice@example.com -password testing
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gridcall/api/config"
	bundb "github.com/gridcall/api/db"
	"github.com/gridcall/api/models"
)

func main() {
	username := flag.String("username", "", "username (required)")
	email := flag.String("email", "", "email address (required)")
	password := flag.String("password", "", "plain-text password (required)")
	flag.Parse()

	if *username == "" || *email == "" || *password == "" {
		log.Fatal("-username, -email and -password are all required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("bcrypt:", err)
	}

	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	user := &models.User{
		Username:  *username,
		Email:     *email,
		Password:  string(hash),
		CreatedAt: time.Now().UTC(),
	}

	_, err = db.NewInsert().Model(user).
		On("CONFLICT (username) DO UPDATE SET password = EXCLUDED.password, email = EXCLUDED.email").
		Exec(context.Background())
	if err != nil {
		log.Fatal("insert user:", err)
	}

	fmt.Printf("user %q saved\n", *username)
}
