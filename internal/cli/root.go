// Package cli implements the ledgerctl operator commands. They talk to
// the database directly through the same repositories and services the
// HTTP server uses.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/chatledger/backend/internal/config"
	"github.com/chatledger/backend/internal/db"
	"github.com/chatledger/backend/internal/repository/postgres"
)

var (
	heading = color.New(color.FgMagenta)
	success = color.New(color.FgGreen)
	warning = color.New(color.FgYellow)
	failure = color.New(color.FgRed)
)

var rootCmd = &cobra.Command{
	Use:           "ledgerctl",
	Short:         "Operator tooling for the token-credit ledger",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Any command failure prints a red diagnostic and
// exits 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		failure.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// connect builds a pgx pool from DATABASE_URL with a bounded dial
// timeout and returns the repository set on top of it.
func connect(ctx context.Context) (postgres.Repositories, func(), error) {
	cfg := config.Load()
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return postgres.Repositories{}, nil, fmt.Errorf("connect to database: %w", err)
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}

// requireCheckBalance enforces the CHECK_BALANCE feature flag the same
// way the HTTP surface does.
func requireCheckBalance() error {
	v, ok := os.LookupEnv("CHECK_BALANCE")
	if !ok {
		return fmt.Errorf("CHECK_BALANCE environment variable is not set! Configure it to use it: `CHECK_BALANCE=true`")
	}
	if !config.IsEnabled(v) {
		return fmt.Errorf("CHECK_BALANCE environment variable is set to `false`! Please configure: `CHECK_BALANCE=true`")
	}
	return nil
}

// askQuestion prompts on stdout and reads one trimmed line from stdin.
func askQuestion(prompt string) (string, error) {
	fmt.Print(prompt + " ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// emailArg resolves the email from the positional args, prompting
// interactively when it was omitted, and validates it.
func emailArg(args []string) (string, error) {
	email := ""
	if len(args) > 0 {
		email = args[0]
	}
	if email == "" {
		var err error
		email, err = askQuestion("Email:")
		if err != nil {
			return "", err
		}
	}
	if !strings.Contains(email, "@") {
		return "", fmt.Errorf("invalid email address")
	}
	return email, nil
}
