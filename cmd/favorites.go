package cmd

import (
	"context"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bfflix/bfflix/pkg/validation"
)

// favoritesCmd groups the favorites subcommands.
func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "favorites",
		Short: "Manage your favorite titles",
	}

	cmd.AddCommand(
		favoritesListCmd(),
		favoritesAddCmd(),
		favoritesRemoveCmd(),
	)

	return cmd
}

func favoritesListCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show your favorites",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidatePageSize(limit); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			result, err := api.FetchFavorites(context.Background(), page, limit)
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch favorites")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			if len(result.Items) == 0 {
				cmd.Println("You have no favorites yet.")
				return
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Title", "Type"})
			for _, item := range result.Items {
				table.Append([]string{strconv.FormatInt(item.ID, 10), item.Title, item.MediaType})
			}
			table.Render()
			cmd.Printf("Page %d of %d\n", result.Page, result.TotalPages)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to fetch")
	cmd.Flags().IntVarP(&limit, "limit", "l", 25, "Number of items per page")

	return cmd
}

func favoritesAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add [titleID]",
		Short: "Mark a title as a favorite",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("title ID", args[0]); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			item, err := api.AddFavorite(context.Background(), args[0])
			if err != nil {
				log.Error().Err(err).Msg("Failed to add favorite")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Printf("Added %q to your favorites.\n", item.Title)
		},
	}
}

func favoritesRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove a title from your favorites",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cmd.PrintErrln("Error: Favorite ID must be a number.")
				return
			}
			if err := validation.ValidateItemID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.RemoveFavorite(context.Background(), id); err != nil {
				log.Error().Err(err).Msg("Failed to remove favorite")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Favorite removed.")
		},
	}
}
