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

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <name> <email>",
	Short: "Create a user",
	Long: `Create a user account.

The password is read from the FORGE_USER_PASSWORD environment variable,
or generated when it is unset. A generated password is printed to stdout.

This is how the first admin gets bootstrapped: user creation over the API
is public but the API only grants the role a caller asks for at sign-up,
so an operator creates the initial admin from the host.

Example:
  forgectl user create --role admin root root@example.com`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		email := args[1]
		roleStr, _ := cmd.Flags().GetString("role")

		password, generated, err := createUser(name, email, roleStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", name, err)
			os.Exit(1)
		}

		fmt.Printf("Created user %s\n", name)
		if generated {
			fmt.Println(password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().StringP("role", "r", "user", "Role for the new user (user or admin)")
}

func createUser(name, email, roleStr string) (password string, generated bool, err error) {
	role, err := model.ParseRole(roleStr)
	if err != nil {
		return "", false, err
	}

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
	_, err = users.CreateUser(&model.User{
		Email:          email,
		Name:           name,
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return "", false, fmt.Errorf("user already exists")
		}
		return "", false, err
	}

	return password, generated, nil
}
