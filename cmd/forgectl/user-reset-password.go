package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fantasy-forge/forge-api/pkg/authn"
	"github.com/fantasy-forge/forge-api/pkg/db"
	"github.com/fantasy-forge/forge-api/pkg/model"
	"github.com/fantasy-forge/forge-api/pkg/server/store"
	gormstore "github.com/fantasy-forge/forge-api/pkg/server/store/gorm"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <name>",
	Short: "Reset a user's password",
	Long: `Reset the password for a user.

The new password is read from the FORGE_USER_PASSWORD environment variable,
or generated when it is unset. A generated password is printed to stdout.

Example:
  forgectl user reset-password root`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]

		password, generated, err := resetUserPassword(name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", name, err)
			os.Exit(1)
		}

		fmt.Printf("Reset password for %s\n", name)
		if generated {
			fmt.Println(password)
		}
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}

func resetUserPassword(name string) (password string, generated bool, err error) {
	password = os.Getenv("FORGE_USER_PASSWORD")
	if password == "" {
		password = model.GenerateAPIKey()
		generated = true
	}

	hash, err := authn.HashPassword(password)
	if err != nil {
		return "", false, fmt.Errorf("failed to hash password: %w", err)
	}

	database, err := db.Connect(db.Config{})
	if err != nil {
		return "", false, err
	}

	users := gormstore.NewUsersStore(database)

	user, err := users.GetUserByName(name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, fmt.Errorf("user not found: %s", name)
		}
		return "", false, err
	}

	if err := users.UpdatePassword(user.ID, hash); err != nil {
		return "", false, err
	}

	return password, generated, nil
}
