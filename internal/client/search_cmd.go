package client

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/viewstate"
)

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().Int("pages", 1, "How many result pages to load")

	rootCmd.AddCommand(feedCmd)
	feedCmd.Flags().Int("pages", 1, "How many feed pages to load")
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search users",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		pages, _ := cmd.Flags().GetInt("pages")

		ctrl := viewstate.NewSearchController(cmd.Context(), gateway, args[0])
		defer ctrl.Close()
		for p := 1; p < pages; p++ {
			if err := ctrl.LoadMore(); err != nil {
				break
			}
		}
		if status := ctrl.Status(); status.Phase == viewstate.PhaseFailed {
			fmt.Println("Search failed:", status.Message)
			return
		}

		users := ctrl.Users()
		if len(users) == 0 {
			fmt.Println("No users found.")
			return
		}
		for _, u := range users {
			line := fmt.Sprintf("- [%d] %s (@%s)", u.ID, u.DisplayName, u.Username)
			if u.Courtship != nil {
				line += fmt.Sprintf(" (%s)", u.Courtship.Type)
			}
			fmt.Println(line)
		}
	},
}

var feedCmd = &cobra.Command{
	Use:   "feed",
	Short: "Show your feed",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		pages, _ := cmd.Flags().GetInt("pages")

		ctrl := viewstate.NewFeedController(cmd.Context(), gateway)
		defer ctrl.Close()
		for p := 1; p < pages; p++ {
			if err := ctrl.LoadMore(); err != nil {
				break
			}
		}
		if status := ctrl.Status(); status.Phase == viewstate.PhaseFailed {
			fmt.Println("Feed failed:", status.Message)
			return
		}

		uploads := ctrl.Uploads()
		if len(uploads) == 0 {
			fmt.Println("Your feed is empty. Court some players first!")
			return
		}
		for _, up := range uploads {
			fmt.Println("-", describeUpload(up))
		}
	},
}
