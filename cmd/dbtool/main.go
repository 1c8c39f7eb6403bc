package main

import (
	"context"
	"database/sql"
	"delivery-route-map/internal/adapters/repositories"
	"delivery-route-map/internal/config"
	"delivery-route-map/internal/platform/db"
	"delivery-route-map/internal/security"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// withDB loads configuration, opens the database and hands it to fn.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, cfg *config.Config, conn *sql.DB) error) error {
	cfg, _, err := config.Load()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	conn, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer conn.Close()

	return fn(ctx, cfg, conn)
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the database schema.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, func(ctx context.Context, _ *config.Config, conn *sql.DB) error {
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return err
			}
			cmd.Println("Schema ready.")
			return nil
		})
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the schema, the admin account and demo deliveries.",
	Long: `Creates the schema, then the ADMIN_USERNAME account when ADMIN_PASSWORD
is set and the user does not exist yet, then loads demo deliveries into an
empty deliveries table. Without ADMIN_PASSWORD use create-admin before the
first login.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withDB(cmd, func(ctx context.Context, cfg *config.Config, conn *sql.DB) error {
			path, _ := cmd.Flags().GetString("file")
			if path == "" {
				path = cfg.SeedPath
			}

			if err := repositories.InitSchema(ctx, conn); err != nil {
				return err
			}

			if cfg.AdminPassword == "" {
				cmd.Println("ADMIN_PASSWORD not set, skipping admin account (use create-admin).")
			} else {
				users := repositories.NewPostgresUserRepository(conn)
				created, err := security.EnsureAdmin(ctx, users, cfg.AdminUsername, cfg.AdminPassword)
				if err != nil {
					return err
				}
				if created {
					cmd.Printf("Created admin %q.\n", cfg.AdminUsername)
				}
			}

			n, err := repositories.SeedFromJSON(ctx, conn, path)
			if err != nil {
				return err
			}
			if n == 0 {
				cmd.Println("Deliveries table not empty, nothing seeded.")
				return nil
			}
			cmd.Printf("Seeded %d deliveries.\n", n)
			return nil
		})
	},
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin USERNAME PASSWORD",
	Short: "Create an administrator account.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, _ *config.Config, conn *sql.DB) error {
			if err := repositories.InitSchema(ctx, conn); err != nil {
				return err
			}

			hash, err := security.HashPassword(args[1])
			if err != nil {
				return err
			}
			u, err := repositories.NewPostgresUserRepository(conn).CreateUser(ctx, args[0], hash, true)
			if err != nil {
				return fmt.Errorf("create admin %q: %w", args[0], err)
			}
			cmd.Printf("Created admin %q (id %d).\n", u.Username, u.ID)
			return nil
		})
	},
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "dbtool",
		Short:        "Database maintenance for the delivery route map",
		SilenceUsage: true,
	}
	seedCmd.Flags().String("file", "", "Seed file (defaults to SEED_PATH)")
	rootCmd.AddCommand(migrateCmd, seedCmd, createAdminCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
