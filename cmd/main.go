package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"golang-stock-assistant/internal/assistant/intent"
	"golang-stock-assistant/internal/assistant/symbol"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "stock-assistant",
	Short: "A CLI for the stock assistant",
	Long:  `Stock assistant answers price, prediction, technical analysis and news questions about stocks.`,
}

var classifyCmd = &cobra.Command{
	Use:   "classify [message]",
	Short: "Classifies a chat message into intent, symbol and timeframe",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := intent.Classify(strings.Join(args, " "))
		out := struct {
			intent.Classification
			Candidates []string `json:"candidates,omitempty"`
		}{Classification: c}
		if c.Symbol != "" {
			out.Candidates = symbol.ExpandFormats(c.Symbol)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize [symbol]",
	Short: "Prints the canonical form of a ticker symbol",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), symbol.Normalize(args[0]))
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd, normalizeCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Whoops. There was an error while executing your CLI '%s'", err)
		os.Exit(1)
	}
}
