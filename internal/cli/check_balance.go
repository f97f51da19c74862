package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	repo "github.com/chatledger/backend/internal/repository"
)

func init() {
	rootCmd.AddCommand(checkBalanceCmd)
}

var checkBalanceCmd = &cobra.Command{
	Use:   "check-balance [email]",
	Short: "Print a user's current token-credit balance",
	Long: `Print a user's current token-credit balance.
Prompts for the email when it is not passed as an argument.
Requires CHECK_BALANCE=true in the environment.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheckBalance,
}

func runCheckBalance(cmd *cobra.Command, args []string) error {
	heading.Println("--------------------------")
	heading.Println("Check a user balance!")
	heading.Println("--------------------------")

	if err := requireCheckBalance(); err != nil {
		return err
	}

	email, err := emailArg(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	repos, closePool, err := connect(ctx)
	if err != nil {
		return err
	}
	defer closePool()

	user, err := repos.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return fmt.Errorf("no user with that email was found")
		}
		return err
	}
	heading.Printf("Found user: %s\n", user.Email)

	balance, err := repos.Balances.Get(ctx, user.ID)
	if err != nil {
		return err
	}
	if balance.TokenCredits == 0 {
		warning.Println("User Balance: 0")
	} else {
		success.Printf("User Balance: %d\n", balance.TokenCredits)
	}
	return nil
}
