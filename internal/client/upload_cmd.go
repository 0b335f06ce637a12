package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
	"github.com/thereidfleish/myace-sub000/internal/models"
	"github.com/thereidfleish/myace-sub000/internal/storecli"
)

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.AddCommand(uploadListCmd)
	uploadCmd.AddCommand(uploadShowCmd)
	uploadCmd.AddCommand(uploadCreateCmd)
	uploadCreateCmd.Flags().String("title", "", "Display title (defaults to the file name)")
	uploadCreateCmd.Flags().Int("bucket", models.UnknownID, "Bucket id to file the video under")
	uploadCreateCmd.Flags().String("visibility", string(models.VisibilityPrivate), "Visibility tier")
	uploadCreateCmd.Flags().IntSlice("share-with", nil, "Extra user ids allowed to view")
	uploadCmd.AddCommand(uploadEditCmd)
	uploadEditCmd.Flags().String("title", "", "New display title")
	uploadEditCmd.Flags().Int("bucket", 0, "New bucket id")
	uploadEditCmd.Flags().String("visibility", "", "New visibility tier")
	uploadEditCmd.Flags().IntSlice("share-with", nil, "Replacement extra-viewer list")
	uploadCmd.AddCommand(uploadDeleteCmd)
	uploadCmd.AddCommand(uploadWatchCmd)
	uploadWatchCmd.Flags().Duration("interval", 3*time.Second, "Poll interval")
	uploadWatchCmd.Flags().Duration("timeout", 5*time.Minute, "Give up after this long")
}

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Manage your video uploads",
}

func describeUpload(up models.Upload) string {
	state := "converting"
	if up.StreamReady {
		state = "ready"
	}
	return fmt.Sprintf("[%d] %s (%s, %s, created %s)",
		up.ID, up.DisplayTitle, state, up.Visibility.Default, up.Created.Format(time.RFC822))
}

var uploadListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your uploads",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		uploads, err := gateway.Uploads(cmd.Context())
		if err != nil {
			fmt.Println("Error listing uploads:", api.UserMessage(err))
			return
		}
		if len(uploads) == 0 {
			fmt.Println("No uploads yet.")
			return
		}
		for _, up := range uploads {
			fmt.Println("-", describeUpload(up))
		}
	},
}

var uploadShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one upload",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Upload id must be a number.")
			return
		}
		up, err := gateway.Upload(cmd.Context(), id)
		if err != nil {
			fmt.Println("Error fetching upload:", api.UserMessage(err))
			return
		}
		fmt.Println(describeUpload(up))
		if up.StreamReady {
			fmt.Println("  Stream:", up.URL)
		}
		if len(up.Visibility.AlsoSharedWith) > 0 {
			fmt.Println("  Also shared with:", up.Visibility.AlsoSharedWith)
		}
	},
}

var uploadCreateCmd = &cobra.Command{
	Use:   "create <file>",
	Short: "Upload a video",
	Long: "Registers the upload, posts the video bytes straight to object storage " +
		"under the server-issued presigned POST, then requests conversion.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}

		title, _ := cmd.Flags().GetString("title")
		bucketID, _ := cmd.Flags().GetInt("bucket")
		visFlag, _ := cmd.Flags().GetString("visibility")
		shareWith, _ := cmd.Flags().GetIntSlice("share-with")

		tier, err := models.ParseVisibilityDefault(visFlag)
		if err != nil {
			fmt.Println(err)
			return
		}

		file, err := os.Open(args[0])
		if err != nil {
			fmt.Println("Error opening file:", err)
			return
		}
		defer func() { _ = file.Close() }()

		filename := filepath.Base(args[0])
		if title == "" {
			title = filename
		}

		created, err := gateway.CreateUpload(cmd.Context(), api.NewUpload{
			Filename:     filename,
			DisplayTitle: title,
			BucketID:     bucketID,
			Visibility:   models.Visibility{Default: tier, AlsoSharedWith: shareWith},
		})
		if err != nil {
			fmt.Println("Error creating upload:", api.UserMessage(err))
			return
		}

		fmt.Println("Posting video to storage...")
		if err := storecli.PostVideo(cmd.Context(), gateway.HTTP, created.Presigned, filename, file); err != nil {
			fmt.Println("Error posting video:", api.UserMessage(err))
			return
		}

		if err := gateway.ConvertUpload(cmd.Context(), created.Upload.ID); err != nil {
			fmt.Println("Error requesting conversion:", api.UserMessage(err))
			return
		}

		fmt.Printf("Upload %d created. Track conversion with 'ace upload watch %d'.\n",
			created.Upload.ID, created.Upload.ID)
	},
}

var uploadEditCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Edit an upload's title, bucket or visibility",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Upload id must be a number.")
			return
		}

		var update api.UploadUpdate
		if cmd.Flags().Changed("title") {
			v, _ := cmd.Flags().GetString("title")
			update.DisplayTitle = &v
		}
		if cmd.Flags().Changed("bucket") {
			v, _ := cmd.Flags().GetInt("bucket")
			update.BucketID = &v
		}
		if cmd.Flags().Changed("visibility") || cmd.Flags().Changed("share-with") {
			current, err := gateway.Upload(cmd.Context(), id)
			if err != nil {
				fmt.Println("Error fetching upload:", api.UserMessage(err))
				return
			}
			vis := current.Visibility
			if cmd.Flags().Changed("visibility") {
				v, _ := cmd.Flags().GetString("visibility")
				tier, err := models.ParseVisibilityDefault(v)
				if err != nil {
					fmt.Println(err)
					return
				}
				vis.Default = tier
			}
			if cmd.Flags().Changed("share-with") {
				shareWith, _ := cmd.Flags().GetIntSlice("share-with")
				vis.AlsoSharedWith = shareWith
			}
			update.Visibility = &vis
		}
		if update.DisplayTitle == nil && update.BucketID == nil && update.Visibility == nil {
			fmt.Println("Nothing to change. Pass at least one flag.")
			return
		}

		up, err := gateway.UpdateUpload(cmd.Context(), id, update)
		if err != nil {
			fmt.Println("Edit failed:", api.UserMessage(err))
			return
		}
		fmt.Println("Updated:", describeUpload(up))
	},
}

var uploadDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an upload and its comments",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Upload id must be a number.")
			return
		}
		if err := gateway.DeleteUpload(cmd.Context(), id); err != nil {
			fmt.Println("Error deleting upload:", api.UserMessage(err))
			return
		}
		fmt.Println("Upload deleted.")
	},
}

var uploadWatchCmd = &cobra.Command{
	Use:   "watch <id>",
	Short: "Poll an upload until its stream is ready",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Upload id must be a number.")
			return
		}
		interval, _ := cmd.Flags().GetDuration("interval")
		timeout, _ := cmd.Flags().GetDuration("timeout")
		deadline := time.Now().Add(timeout)

		for {
			up, err := gateway.Upload(cmd.Context(), id)
			if err != nil {
				fmt.Println("Error polling upload:", api.UserMessage(err))
				return
			}
			if up.StreamReady {
				fmt.Println("Stream ready:", up.URL)
				return
			}
			if time.Now().After(deadline) {
				fmt.Println("Still converting; giving up. Try again later.")
				return
			}
			time.Sleep(interval)
		}
	},
}
