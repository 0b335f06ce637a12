package client

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/thereidfleish/myace-sub000/internal/api"
)

func init() {
	rootCmd.AddCommand(bucketCmd)
	bucketCmd.AddCommand(bucketListCmd)
	bucketCmd.AddCommand(bucketCreateCmd)
	bucketCmd.AddCommand(bucketRenameCmd)
	bucketCmd.AddCommand(bucketDeleteCmd)
}

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Manage your video buckets",
}

var bucketListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your buckets",
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		buckets, err := gateway.Buckets(cmd.Context())
		if err != nil {
			fmt.Println("Error listing buckets:", api.UserMessage(err))
			return
		}
		if len(buckets) == 0 {
			fmt.Println("No buckets yet. Create one with 'ace bucket create <name>'.")
			return
		}
		for _, b := range buckets {
			fmt.Printf("- [%d] %s (%d videos, modified %s)\n",
				b.ID, b.Name, b.Size, b.LastModified.Format(time.RFC822))
		}
	},
}

var bucketCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a bucket",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		bucket, err := gateway.CreateBucket(cmd.Context(), args[0])
		if err != nil {
			fmt.Println("Error creating bucket:", api.UserMessage(err))
			return
		}
		fmt.Printf("Created bucket %q (id %d)\n", bucket.Name, bucket.ID)
	},
}

var bucketRenameCmd = &cobra.Command{
	Use:   "rename <id> <name>",
	Short: "Rename a bucket",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Bucket id must be a number.")
			return
		}
		bucket, err := gateway.RenameBucket(cmd.Context(), id, args[1])
		if err != nil {
			fmt.Println("Error renaming bucket:", api.UserMessage(err))
			return
		}
		fmt.Printf("Renamed bucket %d to %q\n", bucket.ID, bucket.Name)
	},
}

var bucketDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a bucket (videos keep existing, untagged)",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if !requireSession(cmd) {
			return
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Println("Bucket id must be a number.")
			return
		}
		if err := gateway.DeleteBucket(cmd.Context(), id); err != nil {
			fmt.Println("Error deleting bucket:", api.UserMessage(err))
			return
		}
		fmt.Println("Bucket deleted.")
	},
}
