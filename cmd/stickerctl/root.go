package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sticker-backend/internal/client"
)

var (
	version = "dev"
	commit  = "none"
)

const defaultAPI = "http://localhost:5000/api"

type contextKey string

const clientKey contextKey = "client"

var rootCmd = &cobra.Command{
	Use:     "stickerctl",
	Short:   "Generate, save and print barcode stickers",
	Version: fmt.Sprintf("%s (commit: %s)", version, commit),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		api, _ := cmd.Flags().GetString("api")
		if api == "" {
			api = defaultAPI
		}
		timeout, _ := cmd.Flags().GetDuration("timeout")
		cmd.SetContext(context.WithValue(cmd.Context(), clientKey, client.New(api, timeout)))
		return nil
	},
}

func init() {
	cobra.OnInitialize(loadEnv)

	rootCmd.PersistentFlags().String("api", "", "API base URL (env STICKER_API_URL)")
	rootCmd.PersistentFlags().Duration("timeout", client.DefaultTimeout, "HTTP timeout per request")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress non-essential output")
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.AddCommand(generateCmd, importCmd, stickersCmd, productsCmd)
}

// loadEnv reads .env and lets STICKER_API_URL fill an unset --api.
func loadEnv() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "Warning: could not read .env: %v\n", err)
	}
	if v := os.Getenv("STICKER_API_URL"); v != "" {
		if f := rootCmd.PersistentFlags().Lookup("api"); f != nil && !f.Changed {
			f.Value.Set(v)
		}
	}
}

func getClient(cmd *cobra.Command) *client.Client {
	c, _ := cmd.Context().Value(clientKey).(*client.Client)
	return c
}

func getWriter(cmd *cobra.Command) *Writer {
	quiet, _ := cmd.Flags().GetBool("quiet")
	return NewWriter(quiet)
}

// requestContext bounds a single command's API work.
func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 10*time.Minute)
}

// Execute runs the root command and returns an exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		quiet, _ := rootCmd.PersistentFlags().GetBool("quiet")
		return NewWriter(quiet).Error(err)
	}
	return 0
}
