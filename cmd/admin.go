package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/vibast-solutions/ms-go-blog-auth/app/service"

	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative account tasks",
}

var adminSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the admin account from ADMIN_EMAIL and ADMIN_PASSWORD",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg := loadConfig()
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		created, err := newUserService(db, cfg).SeedAdmin(context.Background())
		if err != nil {
			return err
		}
		if created {
			fmt.Printf("admin account created: %s\n", cfg.Admin.Email)
		} else {
			fmt.Println("admin account not created (already present or not configured)")
		}
		return nil
	},
}

var adminVerifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Toggle the verified flag of an account",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		cfg := loadConfig()
		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		user, err := newUserService(db, cfg).ToggleVerificationByEmail(context.Background(), args[0])
		if err != nil {
			if errors.Is(err, service.ErrUserNotFound) {
				return fmt.Errorf("no account with email %q", args[0])
			}
			return err
		}

		fmt.Printf("user_id: %d\n", user.ID)
		fmt.Printf("verified: %t\n", user.IsVerified)
		return nil
	},
}

func init() {
	adminCmd.AddCommand(adminSeedCmd)
	adminCmd.AddCommand(adminVerifyCmd)
	rootCmd.AddCommand(adminCmd)
}
