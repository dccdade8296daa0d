package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Priya00300/url-shortener-devops/internal/client"
)

const requestTimeout = 10 * time.Second

var rootCmd = &cobra.Command{
	Use:   "shortctl",
	Short: "Admin CLI for the URL shortener",
}

var shortenCmd = &cobra.Command{
	Use:   "shorten [TARGET_URL]",
	Short: "Create a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runShorten,
}

var getCmd = &cobra.Command{
	Use:   "get [CODE]",
	Short: "Show a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

var deleteCmd = &cobra.Command{
	Use:   "delete [CODE]",
	Short: "Deactivate a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var statsCmd = &cobra.Command{
	Use:   "stats [CODE]",
	Short: "Show click statistics for a short link",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.PersistentFlags().StringP("server-url", "u", "http://localhost:8888", "Shortener server URL")

	shortenCmd.Flags().StringP("alias", "a", "", "Custom alias for the link")
	shortenCmd.Flags().Duration("expires-in", 0, "Lifetime after which the link expires (e.g. 720h)")

	rootCmd.AddCommand(shortenCmd, getCmd, deleteCmd, statsCmd)
}

func commands(cmd *cobra.Command) *client.Commands {
	serverURL, _ := cmd.Flags().GetString("server-url")

	return client.NewCommands(client.New(serverURL))
}

func runShorten(cmd *cobra.Command, args []string) error {
	alias, _ := cmd.Flags().GetString("alias")
	expiresIn, _ := cmd.Flags().GetDuration("expires-in")

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return commands(cmd).Shorten(ctx, args[0], alias, expiresIn)
}

func runGet(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return commands(cmd).Get(ctx, args[0])
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return commands(cmd).Delete(ctx, args[0])
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	return commands(cmd).Stats(ctx, args[0])
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
