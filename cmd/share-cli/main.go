package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "share-cli",
	Short: "Read shared chat-api threads from the command line",
	Long: `share-cli consumes the public share endpoints of a chat-api
deployment, the same surface an unauthenticated browser hits.

Examples:
  share-cli fetch Ab3dEf5gH1jKlmnopQr2sT
  share-cli fetch Ab3dEf5gH1jKlmnopQr2sT --password hunter2
  share-cli messages Ab3dEf5gH1jKlmnopQr2sT --base-url https://chat.example.com`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(messagesCmd)

	rootCmd.PersistentFlags().String("base-url", "", "Service base URL (defaults to SHARE_BASE_URL)")
}
