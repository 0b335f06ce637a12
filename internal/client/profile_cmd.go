package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
)

func init() {
	rootCmd.AddCommand(profileCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileEditCmd)
	profileEditCmd.Flags().String("username", "", "New username")
	profileEditCmd.Flags().String("display-name", "", "New display name")
	profileEditCmd.Flags().String("bio", "", "New biography")
	profileEditCmd.Flags().String("email", "", "New email (requires re-confirmation)")
	profileCmd.AddCommand(profileDeleteCmd)
	profileDeleteCmd.Flags().Bool("yes", false, "Confirm account deletion")

	rootCmd.AddCommand(usernameCheckCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage your profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		user, err := gateway.Me(cmd.Context())
		if err != nil {
			fmt.Println("Error fetching profile:", api.UserMessage(err))
			return
		}
		fmt.Printf("%s (@%s)\n", user.DisplayName, user.Username)
		if user.Biography != "" {
			fmt.Println(user.Biography)
		}
		fmt.Printf("Email: %s (confirmed: %v)\n", user.Email, user.EmailConfirmed)
	},
}

var profileEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit profile fields",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}

		var update api.UserUpdate
		if cmd.Flags().Changed("username") {
			v, _ := cmd.Flags().GetString("username")
			update.Username = &v
		}
		if cmd.Flags().Changed("display-name") {
			v, _ := cmd.Flags().GetString("display-name")
			update.DisplayName = &v
		}
		if cmd.Flags().Changed("bio") {
			v, _ := cmd.Flags().GetString("bio")
			update.Biography = &v
		}
		if cmd.Flags().Changed("email") {
			v, _ := cmd.Flags().GetString("email")
			update.Email = &v
		}
		if update == (api.UserUpdate{}) {
			fmt.Println("Nothing to change. Pass at least one flag.")
			return
		}

		user, err := gateway.UpdateMe(cmd.Context(), update)
		if err != nil {
			fmt.Println("Edit failed:", api.UserMessage(err))
			return
		}
		sess.SetUser(user)
		cfg.Username = user.Username
		if err := SaveConfigGlobal(); err != nil {
			fmt.Println("Warning: could not save config:", err)
		}
		fmt.Println("Profile updated.")
	},
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete your account permanently",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		confirmed, _ := cmd.Flags().GetBool("yes")
		if !confirmed {
			fmt.Println("This removes your account, uploads and comments. Re-run with --yes to confirm.")
			return
		}
		if err := sess.DeleteAccount(cmd.Context()); err != nil {
			fmt.Println("Deletion failed:", api.UserMessage(err))
			return
		}
		cfg.Username = ""
		if err := SaveConfigGlobal(); err != nil {
			fmt.Println("Warning: could not save config:", err)
		}
		fmt.Println("Account deleted.")
	},
}

var usernameCheckCmd = &cobra.Command{
	Use:   "username-check <name>",
	Short: "Check whether a username is available",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		available, err := gateway.CheckUsername(cmd.Context(), args[0])
		if err != nil {
			fmt.Println("Error checking username:", api.UserMessage(err))
			return
		}
		if available {
			fmt.Printf("%s is available\n", args[0])
		} else {
			fmt.Printf("%s is taken\n", args[0])
		}
	},
}
