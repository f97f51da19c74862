package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/chatledger/backend/internal/models"
	repo "github.com/chatledger/backend/internal/repository"
	"github.com/chatledger/backend/internal/services"
)

func init() {
	rootCmd.AddCommand(addBalanceCmd)
	addBalanceCmd.Flags().String("idempotency-key", "", "Apply this grant at most once across retries")
}

var addBalanceCmd = &cobra.Command{
	Use:   "add-balance [email] [amount]",
	Short: "Credit a user's token balance",
	Long: `Credit a user's token balance. The amount defaults to 1000 when
omitted. Requires CHECK_BALANCE=true in the environment.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runAddBalance,
}

func runAddBalance(cmd *cobra.Command, args []string) error {
	heading.Println("--------------------------")
	heading.Println("Add balance to a user account!")
	heading.Println("--------------------------")

	if err := requireCheckBalance(); err != nil {
		return err
	}

	email, err := emailArg(args)
	if err != nil {
		return err
	}

	var amount *int64
	if len(args) > 1 {
		n, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}
		amount = &n
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

	idemKey, _ := cmd.Flags().GetString("idempotency-key")
	svc := services.NewBalanceService(repos.Transactions, repos.Balances, nil, nil)
	txn, err := svc.Credit(ctx, services.CreditParams{
		UserID:         user.ID,
		Amount:         amount,
		Context:        models.CtxAdmin,
		IdempotencyKey: idemKey,
	})
	if err != nil {
		return err
	}

	success.Printf("Credited %d tokens. New balance: %d\n", txn.RawAmount, txn.Balance)
	return nil
}
