package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
)

func init() {
	rootCmd.AddCommand(commentCmd)
	commentCmd.AddCommand(commentListCmd)
	commentCmd.AddCommand(commentAddCmd)
	commentAddCmd.Flags().Int("at", models.NoAnchor, "Anchor the comment at this many seconds into the video")
	commentCmd.AddCommand(commentDeleteCmd)
}

var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Read and write comments on uploads",
}

var commentListCmd = &cobra.Command{
	Use:   "list <upload-id>",
	Short: "List an upload's comments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		uploadID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Upload id must be a number.")
			return
		}
		comments, err := gateway.Comments(cmd.Context(), uploadID)
		if err != nil {
			fmt.Println("Error listing comments:", api.UserMessage(err))
			return
		}
		if len(comments) == 0 {
			fmt.Println("No comments yet.")
			return
		}
		for _, c := range comments {
			position := ""
			if c.AnchorSeconds != models.NoAnchor {
				position = fmt.Sprintf(" @%ds", c.AnchorSeconds)
			}
			fmt.Printf("- [%d] %s%s: %s (%s)\n",
				c.ID, c.Author.Username, position, c.Text, c.Created.Format(time.RFC822))
		}
	},
}

var commentAddCmd = &cobra.Command{
	Use:   "add <upload-id> <text>",
	Short: "Comment on an upload",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		uploadID, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Upload id must be a number.")
			return
		}
		anchor, _ := cmd.Flags().GetInt("at")

		comment, err := gateway.CreateComment(cmd.Context(), uploadID, args[1], anchor)
		if err != nil {
			fmt.Println("Error posting comment:", api.UserMessage(err))
			return
		}
		fmt.Printf("Comment %d posted.\n", comment.ID)
	},
}

var commentDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete your comment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Comment id must be a number.")
			return
		}
		if err := gateway.DeleteComment(cmd.Context(), id); err != nil {
			fmt.Println("Error deleting comment:", api.UserMessage(err))
			return
		}
		fmt.Println("Comment deleted.")
	},
}
