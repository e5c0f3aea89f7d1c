package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/mateoAlonso06/core-banking-api-sub001/internal/domain"
	"github.com/mateoAlonso06/core-banking-api-sub001/internal/infrastructure/postgres"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "corebank-cli",
		Short: "Core banking CLI tool",
		Long:  `A command line interface for interacting with the core banking API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the core banking API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		openAccountCmd(),
		depositCmd(),
		withdrawCmd(),
		transferCmd(),
		getTransferCmd(),
		validateNumberCmd(),
		migrateCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func openAccountCmd() *cobra.Command {
	var customerID, accountType, currency, alias string

	cmd := &cobra.Command{
		Use:   "open-account",
		Short: "Open a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/accounts", "", map[string]any{
				"customer_id": customerID,
				"type":        accountType,
				"currency":    currency,
				"alias":       alias,
			})
		},
	}

	cmd.Flags().StringVar(&customerID, "customer", "", "Customer ID")
	cmd.Flags().StringVar(&accountType, "type", "CHECKING", "Account type (CHECKING, SAVINGS, FIXED_DEPOSIT)")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().StringVar(&alias, "alias", "", "Account alias")
	_ = cmd.MarkFlagRequired("customer")

	return cmd
}

func depositCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "deposit <account-id> <amount> <currency>",
		Short: "Deposit funds into an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/deposits", args[0])
			return postJSON(path, key, map[string]any{
				"amount":   args[1],
				"currency": args[2],
			})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Idempotency key")

	return cmd
}

func withdrawCmd() *cobra.Command {
	var key string

	cmd := &cobra.Command{
		Use:   "withdraw <account-id> <amount> <currency>",
		Short: "Withdraw funds from an account",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := fmt.Sprintf("/api/v1/accounts/%s/withdrawals", args[0])
			return postJSON(path, key, map[string]any{
				"amount":   args[1],
				"currency": args[2],
			})
		},
	}

	cmd.Flags().StringVar(&key, "key", "", "Idempotency key")

	return cmd
}

func transferCmd() *cobra.Command {
	var from, to, amount, currency, key, description string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer funds between accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postJSON("/api/v1/transfers", key, map[string]any{
				"source_account_id": from,
				"target_account_id": to,
				"amount":            amount,
				"currency":          currency,
				"description":       description,
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "Source account ID")
	cmd.Flags().StringVar(&to, "to", "", "Target account ID")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().StringVar(&key, "key", "", "Idempotency key")
	cmd.Flags().StringVar(&description, "description", "", "Transfer description")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

func getTransferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get-transfer <id>",
		Short: "Fetch a transfer by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return getJSON("/api/v1/transfers/" + args[0])
		},
	}
}

func validateNumberCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate-number <account-number>",
		Short: "Validate an account number offline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := domain.ValidateAccountNumber(args[0]); err != nil {
				return fmt.Errorf("INVALID: %w", err)
			}

			fmt.Println("VALID")
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var databaseURL, path string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration operations",
	}

	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", os.Getenv("DATABASE_URL"), "Database URL")
	cmd.PersistentFlags().StringVar(&path, "path", "migrations", "Migrations directory")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrations(databaseURL, path)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the last migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.RunMigrationsDown(databaseURL, path)
		},
	})

	return cmd
}

func postJSON(path, idempotencyKey string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func getJSON(path string) error {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return printResponse(resp)
}

func printResponse(resp *http.Response) error {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var decoded any
	if err := json.Unmarshal(body, &decoded); err != nil {
		fmt.Println(string(body))
	} else {
		printJSON(decoded)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	return nil
}

func printJSON(v any) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("failed to render response: %v\n", err)
		return
	}

	fmt.Println(string(out))
}
