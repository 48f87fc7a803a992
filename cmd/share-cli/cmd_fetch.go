package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/infrastructure/shareclient"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch <token>",
	Short: "Fetch a shared thread by token",
	Args:  cobra.ExactArgs(1),
	RunE:  runFetch,
}

var messagesCmd = &cobra.Command{
	Use:   "messages <token>",
	Short: "List the messages of a public share",
	Args:  cobra.ExactArgs(1),
	RunE:  runMessages,
}

func init() {
	fetchCmd.Flags().String("password", "", "Password for protected shares")
}

// newShareClient resolves the base URL from the flag or the service
// configuration and builds the relay client.
func newShareClient(cmd *cobra.Command) (*shareclient.Client, error) {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		_ = godotenv.Overload(".env")
		cfg, err := config.Load()
		if err != nil {
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		baseURL = cfg.ShareBaseURL
	}
	return shareclient.NewClient(baseURL), nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	client, err := newShareClient(cmd)
	if err != nil {
		return err
	}

	password, _ := cmd.Flags().GetString("password")
	view, err := client.Fetch(cmd.Context(), args[0], password)
	if err != nil {
		return err
	}
	return printJSON(view)
}

func runMessages(cmd *cobra.Command, args []string) error {
	client, err := newShareClient(cmd)
	if err != nil {
		return err
	}

	views, err := client.Messages(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	return printJSON(views)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
