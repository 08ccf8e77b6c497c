// Package main provides the entry point for the safeurl CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for safeurl.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "safeurl",
		Short: "Lexical URL feature extraction and malicious URL detection",
		Long: `safeurl analyzes URLs for phishing and malware indicators.

It computes a lexical feature vector from each URL (length, character
classes, entropy, IP literals, rare TLDs, suspicious keywords) and asks a
hosted classification service for a benign/malicious verdict. Feature
extraction is fully local; only the raw URL leaves the machine, and that
can be disabled with --no-classify.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCheckCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
