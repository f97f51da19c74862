package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chatledger/backend/internal/services"
)

func init() {
	rootCmd.AddCommand(userStatCmd)
}

var userStatCmd = &cobra.Command{
	Use:   "user-stat [email]",
	Short: "Print a user's conversation and message counts",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runUserStat,
}

func runUserStat(cmd *cobra.Command, args []string) error {
	heading.Println("--------------------------")
	heading.Println("User usage statistics")
	heading.Println("--------------------------")

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

	svc := services.NewQueryService(repos.Users, repos.Balances, repos.Conversations, repos.Messages, repos.Stats, true)
	usage, err := svc.UserUsage(ctx, email)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return fmt.Errorf("no user with that email was found")
		}
		return err
	}

	heading.Printf("Found user: %s\n", usage.Email)
	fmt.Printf("Conversations: %d, Messages: %d\n", usage.Conversations, usage.Messages)
	return nil
}
