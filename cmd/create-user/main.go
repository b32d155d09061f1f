// CLI tool to create a user with a bcrypt-hashed password and a fresh auth
// token. Run while the API server is stopped; the data directory takes a
// single-process lock.
// Usage: go run ./cmd/create-user
package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	badger "github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const keyNamespace = "healthTracker"

// storedUser mirrors the account record the API server reads.
type storedUser struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AuthToken string    `json:"auth_token"`
	Password  string    `json:"password"`
	CreatedAt time.Time `json:"created_at"`
}

func main() {
	_ = godotenv.Load()

	dir := os.Getenv("DATA_DIR")
	if dir == "" {
		dir = "./data"
	}
	db, err := badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to open data directory %s: %v\n", dir, err)
		os.Exit(1)
	}
	defer db.Close()

	reader := bufio.NewReader(os.Stdin)

	fmt.Print("Username: ")
	username, _ := reader.ReadString('\n')
	username = strings.TrimSpace(username)

	fmt.Print("Email: ")
	email, _ := reader.ReadString('\n')
	email = strings.TrimSpace(email)

	fmt.Print("Password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)

	if username == "" || password == "" {
		fmt.Fprintln(os.Stderr, "Username and password are required")
		os.Exit(1)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error hashing password: %v\n", err)
		os.Exit(1)
	}

	u := storedUser{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		AuthToken: uuid.NewString(),
		Password:  string(hash),
		CreatedAt: time.Now(),
	}

	userKey := []byte(keyNamespace + "_user_" + u.Username)
	tokenKey := []byte(keyNamespace + "_token_" + u.AuthToken)

	err = db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey); err == nil {
			return fmt.Errorf("user %q already exists", u.Username)
		} else if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		data, err := json.Marshal(u)
		if err != nil {
			return err
		}
		if err := txn.Set(userKey, data); err != nil {
			return err
		}
		tokenVal, err := json.Marshal(u.Username)
		if err != nil {
			return err
		}
		return txn.Set(tokenKey, tokenVal)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating user: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nUser created successfully!\n")
	fmt.Printf("  ID:         %s\n", u.ID)
	fmt.Printf("  Username:   %s\n", u.Username)
	fmt.Printf("  Auth Token: %s\n", u.AuthToken)
}
