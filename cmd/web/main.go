package main

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/de-tools/top-users/pkg/server"
	"github.com/de-tools/top-users/pkg/store/duckdb"
	duckdbusage "github.com/de-tools/top-users/pkg/store/duckdb/usage"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var dbPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Serve the archived monthly usage over HTTP",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&dbPath, "db", "d", "topusers.db",
		"Path to the DuckDB usage archive")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	db, err := duckdb.NewDB(duckdb.Settings{DbPath: dbPath})
	if err != nil {
		return fmt.Errorf("failed to open usage archive: %w", err)
	}
	defer db.Close()

	usageStore, err := duckdbusage.NewStore(db)
	if err != nil {
		return fmt.Errorf("failed to create usage store: %w", err)
	}

	mux := server.ConfigureRouter(server.Config{
		Dependencies: server.Dependencies{
			UsageStore: usageStore,
			Logger:     logger,
		},
	})

	host := os.Getenv("SERVER_HOST")
	port := os.Getenv("SERVER_PORT")

	if host == "" || port == "" {
		logger.Error().Msgf("Missing server configuration from .env file")
		os.Exit(1)
	}

	addr := net.JoinHostPort(host, port)
	logger.Info().Msgf("starting server on %s", addr)

	return http.ListenAndServe(addr, mux)
}
