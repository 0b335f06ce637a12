package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/session"
)

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("email", "", "Account email (password login)")
	loginCmd.Flags().String("password", "", "Account password (password login)")
	loginCmd.Flags().String("google-token", "", "Google identity token")
	loginCmd.Flags().String("apple-token", "", "Apple identity token")

	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().String("username", "", "Username")
	registerCmd.Flags().String("display-name", "", "Display name")
	registerCmd.Flags().String("email", "", "Email")
	registerCmd.Flags().String("password", "", "Password")

	rootCmd.AddCommand(whoamiCmd)
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Authenticate with the server",
	Run: func(cmd *cobra.Command, args []string) {
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		googleToken, _ := cmd.Flags().GetString("google-token")
		appleToken, _ := cmd.Flags().GetString("apple-token")

		var req api.LoginRequest
		switch {
		case googleToken != "":
			req = api.LoginRequest{Method: api.LoginMethodGoogle, IDToken: googleToken}
		case appleToken != "":
			req = api.LoginRequest{Method: api.LoginMethodApple, IDToken: appleToken}
		case email != "" && password != "":
			req = api.LoginRequest{Method: api.LoginMethodPassword, Email: email, Password: password}
		default:
			fmt.Println("Provide --email and --password, or an identity token flag.")
			return
		}

		user, err := sess.Login(cmd.Context(), req)
		if err != nil {
			fmt.Println("Login failed:", api.UserMessage(err))
			return
		}

		cfg.Username = user.Username
		if err := SaveConfigGlobal(); err != nil {
			fmt.Println("Warning: could not save config:", err)
		}

		fmt.Printf("Logged in as %s\n", user.Username)
		switch sess.Route() {
		case session.RouteOnboarding:
			fmt.Println("Welcome! Finish setting up your profile with 'ace profile edit'.")
		case session.RouteConfirmEmail:
			fmt.Println("Please confirm your email address to unlock everything.")
		}
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the local session",
	Run: func(cmd *cobra.Command, args []string) {
		sess.Logout()
		cfg.Username = ""
		if err := SaveConfigGlobal(); err != nil {
			fmt.Println("Warning: could not save config:", err)
		}
		fmt.Println("Logged out.")
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create a new account",
	Run: func(cmd *cobra.Command, args []string) {
		username, _ := cmd.Flags().GetString("username")
		displayName, _ := cmd.Flags().GetString("display-name")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		if username == "" || email == "" || password == "" {
			fmt.Println("--username, --email and --password are required.")
			return
		}

		user, err := sess.Register(cmd.Context(), api.RegisterRequest{
			Username:    username,
			DisplayName: displayName,
			Email:       email,
			Password:    password,
		})
		if err != nil {
			fmt.Println("Registration failed:", api.UserMessage(err))
			return
		}

		cfg.Username = user.Username
		if err := SaveConfigGlobal(); err != nil {
			fmt.Println("Warning: could not save config:", err)
		}
		fmt.Printf("Registered %s. Check your inbox to confirm your email.\n", user.Username)
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in user",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		user := sess.User()
		fmt.Printf("%s (id %d)\n", user.Username, user.ID)
		if user.DisplayName != "" {
			fmt.Printf("  Display name: %s\n", user.DisplayName)
		}
		fmt.Printf("  Email: %s (confirmed: %v)\n", user.Email, user.EmailConfirmed)
		fmt.Printf("  Uploads: %d, Courtships: %d\n", user.UploadCount, user.CourtshipCount)
	},
}
