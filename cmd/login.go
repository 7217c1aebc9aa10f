package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bfflix/bfflix/auth"
	"github.com/bfflix/bfflix/pkg/validation"
)

// loginCmd creates a new cobra.Command for logging into a BFFLIX account.
func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login",
		Short: "Login to your BFFLIX account",
		Long:  "Login to your BFFLIX account using your email and password",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your BFFLIX email and password.")
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")

			if err := validation.ValidateEmail(email); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("password", password); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.Login(context.Background(), email, password); err != nil {
				log.Error().Err(err).Msg("Login failed")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Login was successful.")
		},
	}
}

// signupCmd creates a new cobra.Command for registering a BFFLIX account.
func signupCmd() *cobra.Command {
	var displayName string

	cmd := &cobra.Command{
		Use:   "signup",
		Short: "Create a new BFFLIX account",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("Please enter your BFFLIX email and password.")
			email := promptForInput("Email: ")
			password := promptForPassword("Password: ")

			if err := validation.ValidateEmail(email); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("password", password); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if displayName == "" {
				displayName = promptForInput("Display name: ")
			}

			api := newAPIClient()
			if err := api.Signup(context.Background(), email, password, displayName); err != nil {
				log.Error().Err(err).Msg("Signup failed")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Account created. You are now logged in.")
		},
	}

	cmd.Flags().StringVarP(&displayName, "name", "n", "", "Display name shown to your circles")

	return cmd
}

// logoutCmd creates a new cobra.Command for ending the current session.
func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Logout and discard stored credentials",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			if err := api.Logout(context.Background()); err != nil {
				log.Error().Err(err).Msg("Logout failed")
				cmd.PrintErrln("Error: Failed to clear stored credentials.")
				return
			}
			cmd.Println("Logged out.")
		},
	}
}

// whoamiCmd creates a new cobra.Command showing the current session.
func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently logged-in account",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			account, err := api.FetchAccount(context.Background())
			if err != nil {
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Printf("Logged in as %s (%s)\n", account.DisplayName, account.Email)

			repo := &tokenRepoStorer{repo: newTokenRepo()}
			if record, err := repo.GetTokenRecord(); err == nil && record != nil {
				if exp, ok := auth.TokenExpiry(record.AccessToken); ok {
					cmd.Println("Access token expires at:", exp.Local().Format("2006-01-02 15:04:05"))
				}
			}
		},
	}
}

// promptForInput prompts the user for input and returns the trimmed string.
func promptForInput(prompt string) string {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print(prompt)
	input, err := reader.ReadString('\n')
	if err != nil {
		fmt.Println("Error: Failed to read input.")
		os.Exit(1)
	}
	return strings.TrimSpace(input)
}

// promptForPassword prompts the user for a password securely and returns the trimmed string.
func promptForPassword(prompt string) string {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		fmt.Println("Error: Failed to read password.")
		os.Exit(1)
	}
	fmt.Println() // Print a newline for better formatting
	return strings.TrimSpace(string(password))
}
