package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/big2undey-pixel/URL-Classification/internal/config"
	"github.com/big2undey-pixel/URL-Classification/internal/database"
	"github.com/big2undey-pixel/URL-Classification/internal/model"
)

// Verdict change directions for the history summary.
const (
	verdictChangeWorsened  = "worsened"
	verdictChangeImproved  = "improved"
	verdictChangeUnchanged = "unchanged"
)

// NewHistoryCmd creates the history command.
// This command inspects check results stored in the database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [url]",
		Short: "Show stored check history for a URL",
		Long: `History displays previous check results from the local database.

For a given URL it lists every stored check, most recent first, and
summarizes whether the verdict changed between the two latest checks.
A URL that flips from benign to malicious is a strong signal that the
site was compromised or repurposed.

Examples:
  # Show check history for a URL
  safeurl history https://example.com/login

  # List every URL with stored history
  safeurl history --list-urls

  # Output the full history as JSON
  safeurl history --json https://example.com/login`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list-urls", "L", false,
		"List all URLs with stored check history")
	cmd.Flags().BoolP("json", "j", false,
		"Output history in JSON format")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	listURLs, err := cmd.Flags().GetBool("list-urls")
	if err != nil {
		return err
	}

	// Validate arguments before opening the database so a missing argument
	// doesn't leave a lock behind.
	if !listURLs && len(args) == 0 {
		return errors.New("url is required (use --list-urls to see checked urls)")
	}

	db, err := database.Open(config.XDGDataDir(), database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()

	if listURLs {
		return listCheckedURLs(ctx, db)
	}

	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputHistoryJSON(ctx, db, args[0])
	}
	return outputHistoryText(ctx, db, args[0])
}

// listCheckedURLs lists all URLs that have check records in the database.
func listCheckedURLs(ctx context.Context, db *database.ScanDB) error {
	urls, err := db.ListURLs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list urls: %w", err)
	}

	if len(urls) == 0 {
		fmt.Println("No checked urls found in the database.")
		fmt.Println("\nUse 'safeurl check <url>' to check a URL.")
		return nil
	}

	fmt.Printf("Checked urls (%d):\n\n", len(urls))
	for _, u := range urls {
		fmt.Printf("  • %s\n", u)
	}
	fmt.Println("\nUse 'safeurl history <url>' to see check history for a url.")

	return nil
}

// outputHistoryText prints the check history table and verdict summary.
func outputHistoryText(ctx context.Context, db *database.ScanDB, rawURL string) error {
	metas, err := db.GetHistoryMetadata(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	if len(metas) == 0 {
		fmt.Printf("No check history found for %s\n", rawURL)
		fmt.Println("\nUse 'safeurl check' to check this url.")
		return nil
	}

	fmt.Printf("Check history for %s (%d checks):\n\n", rawURL, len(metas))
	fmt.Printf("  %-20s  %s\n", "Date", "Verdict")
	fmt.Println("  " + strings.Repeat("-", 40))

	for _, meta := range metas {
		fmt.Printf("  %-20s  %s\n",
			meta.Timestamp.Format("2006-01-02 15:04:05"),
			meta.Verdict,
		)
	}

	if len(metas) >= 2 {
		fmt.Printf("\nVerdict change: %s\n",
			formatVerdictChange(metas[1].Verdict, metas[0].Verdict))
	}

	return nil
}

// formatVerdictChange describes the transition between two stored verdicts,
// previous first.
func formatVerdictChange(previous, current string) string {
	if previous == current {
		return fmt.Sprintf("%s (%s)", verdictChangeUnchanged, current)
	}

	direction := verdictChangeWorsened
	if current == model.VerdictBenign.String() {
		direction = verdictChangeImproved
	}
	return fmt.Sprintf("%s (%s -> %s)", direction, previous, current)
}

// HistoryOutput is the JSON document produced by --json.
type HistoryOutput struct {
	// URL is the checked raw URL.
	URL string `json:"url"`

	// VerdictChange summarizes the transition between the two most recent
	// checks. Empty when fewer than two checks are stored.
	VerdictChange string `json:"verdict_change,omitempty"`

	// Reports holds the stored check reports, most recent first.
	Reports []*model.URLReport `json:"reports"`

	// GeneratedAt is when this document was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// outputHistoryJSON prints the full stored history as JSON.
func outputHistoryJSON(ctx context.Context, db *database.ScanDB, rawURL string) error {
	reports, err := db.GetHistory(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("failed to get check history: %w", err)
	}

	out := HistoryOutput{
		URL:         rawURL,
		Reports:     reports,
		GeneratedAt: time.Now(),
	}
	if len(reports) >= 2 {
		out.VerdictChange = formatVerdictChange(
			reports[1].Verdict.String(), reports[0].Verdict.String())
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
