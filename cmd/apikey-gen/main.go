// Command apikey-gen mints an API key directly against the database, for
// bootstrapping integrations before an account owner has dashboard access.
// The plaintext secret is printed exactly once and never stored.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"ekoink.backend/internal/config"
	"ekoink.backend/internal/domain/entities"
	"ekoink.backend/internal/infrastructure/repositories"
	"ekoink.backend/internal/usecases"
	"ekoink.backend/pkg/logger"
)

func main() {
	accountFlag := flag.String("account", "", "account ID the key belongs to (required)")
	userFlag := flag.String("user", "", "user ID to bind the key to (optional; user-bound keys can generate notes)")
	nameFlag := flag.String("name", "bootstrap key", "display name for the key")
	scopesFlag := flag.String("scopes", entities.ScopeAll, "comma-separated scopes, e.g. notes:write,deals:read")
	testFlag := flag.Bool("test", false, "mint a test-mode key (sk_test_ prefix)")
	expiresFlag := flag.Duration("expires", 0, "key lifetime, e.g. 720h (0 = never expires)")
	flag.Parse()

	if err := run(*accountFlag, *userFlag, *nameFlag, *scopesFlag, *testFlag, *expiresFlag); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func run(account, user, name, scopes string, testMode bool, expires time.Duration) error {
	if account == "" {
		return fmt.Errorf("usage: apikey-gen -account <uuid> [-user <uuid>] [-name <name>] [-scopes <s1,s2>] [-test] [-expires <duration>]")
	}
	accountID, err := uuid.Parse(account)
	if err != nil {
		return fmt.Errorf("invalid account ID: %w", err)
	}
	var userID *uuid.UUID
	if user != "" {
		id, err := uuid.Parse(user)
		if err != nil {
			return fmt.Errorf("invalid user ID: %w", err)
		}
		userID = &id
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}
	cfg := config.Load()
	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.Database.URL(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt: false,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	input := &entities.CreateApiKeyInput{
		Name:     name,
		TestMode: testMode,
	}
	if scopes != "" {
		input.Scopes = strings.Split(scopes, ",")
	}
	if expires > 0 {
		at := time.Now().Add(expires)
		input.ExpiresAt = &at
	}

	apiKeyUsecase := usecases.NewApiKeyUsecase(repositories.NewApiKeyRepository(db))
	resp, err := apiKeyUsecase.Create(context.Background(), accountID, userID, input)
	if err != nil {
		return fmt.Errorf("failed to create API key: %w", err)
	}

	fmt.Printf("API key created\n")
	fmt.Printf("  ID:      %s\n", resp.ID)
	fmt.Printf("  Name:    %s\n", resp.Name)
	fmt.Printf("  Prefix:  %s\n", resp.KeyPrefix)
	fmt.Printf("  Scopes:  %s\n", strings.Join(resp.Scopes, ", "))
	fmt.Printf("\n  Secret (shown once, store it now):\n  %s\n", resp.ApiKey)
	return nil
}
