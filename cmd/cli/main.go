package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	token   string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bankledger-cli",
		Short: "BankLedger CLI tool",
		Long:  `A command line interface for interacting with the BankLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the BankLedger API")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "Bearer token for authenticated endpoints")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	// Currency commands
	currencyCmd := &cobra.Command{
		Use:   "currency",
		Short: "Exchange rate operations",
	}

	convertCmd := &cobra.Command{
		Use:   "convert <from> <to> <amount>",
		Short: "Convert an amount between currencies",
		Args:  cobra.ExactArgs(3),
		Run: func(cmd *cobra.Command, args []string) {
			convert(args[0], args[1], args[2])
		},
	}

	refreshCmd := &cobra.Command{
		Use:   "refresh",
		Short: "Force an exchange rate refresh",
		Run: func(cmd *cobra.Command, args []string) {
			refreshRates()
		},
	}

	currencyCmd.AddCommand(convertCmd)
	currencyCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(currencyCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func doRequest(method, path string, body io.Reader) (*http.Response, []byte) {
	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		fmt.Printf("Error building request: %v\n", err)
		os.Exit(1)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)

	return resp, data
}

func checkConsistency() {
	resp, body := doRequest(http.MethodGet, "/api/v1/ledger/consistency", nil)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		Consistent bool `json:"consistent"`
		Mismatches []struct {
			AccountID   string `json:"account_id"`
			Number      string `json:"number"`
			Balance     string `json:"balance"`
			RecordedSum string `json:"recorded_sum"`
		} `json:"mismatches"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if result.Consistent {
		fmt.Println("Consistency check PASSED")
		return
	}

	fmt.Printf("Consistency check found %d mismatched account(s):\n", len(result.Mismatches))
	for _, m := range result.Mismatches {
		fmt.Printf("  %s (%s): balance=%s recorded=%s\n", m.AccountID, m.Number, m.Balance, m.RecordedSum)
	}
	os.Exit(1)
}

func convert(from, to, amount string) {
	query := url.Values{}
	query.Set("from", from)
	query.Set("to", to)
	query.Set("amount", amount)

	resp, body := doRequest(http.MethodGet, "/api/v1/currency/convert?"+query.Encode(), nil)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Conversion FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result struct {
		From            string `json:"from"`
		To              string `json:"to"`
		Amount          string `json:"amount"`
		ConvertedAmount string `json:"converted_amount"`
		Rate            string `json:"rate"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s %s = %s %s (rate: %s)\n", result.Amount, result.From, result.ConvertedAmount, result.To, result.Rate)
}

func refreshRates() {
	resp, body := doRequest(http.MethodPost, "/api/v1/rates/refresh", bytes.NewReader([]byte("{}")))

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Refresh FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	fmt.Println("Exchange rates refreshed")
}
