package cmd

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bfflix/bfflix/pkg/validation"
)

// postsCmd groups the posts subcommands.
func postsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Share and browse notes about watched titles",
	}

	cmd.AddCommand(
		postsListCmd(),
		postsCreateCmd(),
		postsDeleteCmd(),
	)

	return cmd
}

func postsListCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show your feed",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidatePageSize(limit); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			result, err := api.FetchPosts(context.Background(), page, limit)
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch posts")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			if len(result.Items) == 0 {
				cmd.Println("Your feed is empty.")
				return
			}
			for _, post := range result.Items {
				cmd.Printf("[%d] %s (%s)\n    %s\n", post.ID, post.TitleID, post.CreatedAt, post.Body)
			}
			cmd.Printf("Page %d of %d\n", result.Page, result.TotalPages)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to fetch")
	cmd.Flags().IntVarP(&limit, "limit", "l", 25, "Number of items per page")

	return cmd
}

func postsCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create [titleID] [text]",
		Short: "Share a note about a title",
		Args:  cobra.ExactArgs(2),
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("title ID", args[0]); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateNonEmptyString("text", args[1]); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			post, err := api.CreatePost(context.Background(), args[0], args[1])
			if err != nil {
				log.Error().Err(err).Msg("Failed to create post")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Printf("Posted (id %d).\n", post.ID)
		},
	}
}

func postsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [id]",
		Short: "Delete one of your posts",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cmd.PrintErrln("Error: Post ID must be a number.")
				return
			}
			if err := validation.ValidateItemID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.DeletePost(context.Background(), id); err != nil {
				log.Error().Err(err).Msg("Failed to delete post")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Post deleted.")
		},
	}
}
