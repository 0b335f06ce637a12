package client

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
	"github.com/thereidfleish/myace-sub000/internal/viewstate"
)

func init() {
	rootCmd.AddCommand(courtshipCmd)
	courtshipCmd.AddCommand(courtshipListCmd)
	courtshipCmd.AddCommand(courtshipRequestCmd)
	courtshipRequestCmd.Flags().String("as", "friend", "Relationship to request: friend, coach or student")
	courtshipCmd.AddCommand(courtshipAcceptCmd)
	courtshipCmd.AddCommand(courtshipDeclineCmd)
	courtshipCmd.AddCommand(courtshipCancelCmd)
	courtshipCmd.AddCommand(courtshipRemoveCmd)
}

var courtshipCmd = &cobra.Command{
	Use:   "courtship",
	Short: "Manage friends, coaches and students",
}

func describeOther(c models.Courtship) string {
	if c.User != nil {
		return fmt.Sprintf("%s (user %d)", c.User.Username, c.User.ID)
	}
	return "unknown user"
}

var courtshipListCmd = &cobra.Command{
	Use:   "list",
	Short: "List courtships and pending requests",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}

		ctrl := viewstate.NewCourtshipsController(cmd.Context(), gateway, sess.User().ID)
		defer ctrl.Close()
		if status := ctrl.Status(); status.Phase == viewstate.PhaseFailed {
			fmt.Println("Error loading courtships:", status.Message)
			return
		}

		fmt.Println("Courtships:")
		for _, c := range ctrl.Courtships() {
			fmt.Printf("- [%d] %s: %s\n", c.ID, c.Type, describeOther(c))
		}
		fmt.Println("Incoming requests:")
		for _, c := range ctrl.Incoming() {
			fmt.Printf("- [%d] %s from %s\n", c.ID, c.Type.Role(), describeOther(c))
		}
		fmt.Println("Outgoing requests:")
		for _, c := range ctrl.Outgoing() {
			fmt.Printf("- [%d] %s to %s\n", c.ID, c.Type.Role(), describeOther(c))
		}
	},
}

var courtshipRequestCmd = &cobra.Command{
	Use:   "request <user-id>",
	Short: "Send a courtship request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		userID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("User id must be a number.")
			return
		}
		role, _ := cmd.Flags().GetString("as")
		typ := models.CourtshipType(role)
		if typ != models.CourtshipFriend && typ != models.CourtshipCoach && typ != models.CourtshipStudent {
			fmt.Println("--as must be friend, coach or student.")
			return
		}

		req, err := gateway.CreateCourtshipRequest(cmd.Context(), userID, typ)
		if err != nil {
			fmt.Println("Error sending request:", api.UserMessage(err))
			return
		}
		fmt.Printf("Request %d sent to %s.\n", req.ID, describeOther(req))
	},
}

// mutateCourtships runs one accept/decline/cancel/remove action through the
// controller, which re-fetches the affected collections afterwards.
func mutateCourtships(cmd *cobra.Command, arg string, action func(ctrl *viewstate.CourtshipsController, id int) error, done string) {
	if !requireSession(cmd) {
		return
	}
	id, err := strconv.Atoi(arg)
	if err != nil {
		fmt.Println("Id must be a number.")
		return
	}

	ctrl := viewstate.NewCourtshipsController(cmd.Context(), gateway, sess.User().ID)
	defer ctrl.Close()
	if status := ctrl.Status(); status.Phase == viewstate.PhaseFailed {
		fmt.Println("Error loading courtships:", status.Message)
		return
	}
	if err := action(ctrl, id); err != nil {
		fmt.Println("Error:", api.UserMessage(err))
		return
	}
	fmt.Println(done)
}

var courtshipAcceptCmd = &cobra.Command{
	Use:   "accept <request-id>",
	Short: "Accept an incoming request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mutateCourtships(cmd, args[0], (*viewstate.CourtshipsController).Accept, "Request accepted.")
	},
}

var courtshipDeclineCmd = &cobra.Command{
	Use:   "decline <request-id>",
	Short: "Decline an incoming request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mutateCourtships(cmd, args[0], (*viewstate.CourtshipsController).Decline, "Request declined.")
	},
}

var courtshipCancelCmd = &cobra.Command{
	Use:   "cancel <request-id>",
	Short: "Cancel an outgoing request",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mutateCourtships(cmd, args[0], (*viewstate.CourtshipsController).Cancel, "Request cancelled.")
	},
}

var courtshipRemoveCmd = &cobra.Command{
	Use:   "remove <courtship-id>",
	Short: "End an accepted courtship",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mutateCourtships(cmd, args[0], (*viewstate.CourtshipsController).Remove, "Courtship removed.")
	},
}
