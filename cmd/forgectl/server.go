package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/fantasy-forge/forge-api/pkg/audit"
	"github.com/fantasy-forge/forge-api/pkg/config"
	"github.com/fantasy-forge/forge-api/pkg/db"
	"github.com/fantasy-forge/forge-api/pkg/server"
	"github.com/fantasy-forge/forge-api/pkg/server/endpoints"
	"github.com/fantasy-forge/forge-api/pkg/server/store/dir"
	gormstore "github.com/fantasy-forge/forge-api/pkg/server/store/gorm"
	"github.com/fantasy-forge/forge-api/pkg/token"
)

func defaultBindAddress() string {
	if addr := os.Getenv("BIND_ADDRESS"); addr != "" {
		return addr
	}
	return "0.0.0.0"
}

func defaultPort() string {
	if port := os.Getenv("PORT"); port != "" {
		return port
	}
	return "8000"
}

func defaultPortInt() int {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			return p
		}
	}
	return 8000
}

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the Fantasy Forge API server",
	Long: `Run the Fantasy Forge API server

To run the server requires the environment variables FORGE_SESSION_KEY and DATABASE_URL.

By default, database migrations are run on startup. Use --no-migrate to skip.`,
	Run: func(cmd *cobra.Command, args []string) {
		// Validate required environment variables first (fail fast)
		sessionKey, ok := os.LookupEnv("FORGE_SESSION_KEY")
		if !ok || sessionKey == "" {
			fmt.Fprintln(os.Stderr, "FORGE_SESSION_KEY environment variable is required")
			os.Exit(1)
		}

		if os.Getenv("DATABASE_URL") == "" {
			fmt.Fprintln(os.Stderr, "DATABASE_URL environment variable is required")
			os.Exit(1)
		}

		// Run migrations unless --no-migrate is set
		noMigrate, _ := cmd.Flags().GetBool("no-migrate")
		if !noMigrate {
			log.Println("Running database migrations...")
			if err := runMigrations(); err != nil {
				fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
				os.Exit(1)
			}
		}

		cfg := config.Get()

		issuer, err := token.NewIssuer([]byte(sessionKey), cfg.TokenTTL())
		if err != nil {
			fmt.Fprintln(os.Stderr, "Bad FORGE_SESSION_KEY:", err)
			os.Exit(1)
		}

		database, err := db.Connect(db.Config{})
		if err != nil {
			fmt.Fprintln(os.Stderr, "Unable to connect to DB:", err)
			os.Exit(1)
		}

		if cfg.AuditToDatabase {
			if err := audit.EnableStore(db.URL()); err != nil {
				fmt.Fprintln(os.Stderr, "Unable to open audit store:", err)
				os.Exit(1)
			}
		}

		host, _ := cmd.Flags().GetString("bind-address")
		port, _ := cmd.Flags().GetString("port")
		s := server.NewServer(database, cfg, issuer, host, port)

		s.UsersStore = gormstore.NewUsersStore(database)
		s.DevicesStore = gormstore.NewDevicesStore(database)
		s.ImagesStore = dir.NewImagesStore(cfg.ImagesDir)
		s.HealthStore = gormstore.NewHealthStore(database)

		endpoints.RegisterAll(s)

		log.Printf("Running server at http://%s:%s...\n", host, port)
		log.Fatal(s.Start())
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)

	serverCmd.Flags().StringP("port", "p", defaultPort(), "server listen port")
	serverCmd.Flags().StringP("bind-address", "b", defaultBindAddress(), "server bind address")
	serverCmd.Flags().Bool("no-migrate", false, "skip running database migrations on start")
}
