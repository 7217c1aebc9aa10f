package cmd

import (
	"context"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/bfflix/bfflix/client"
	"github.com/bfflix/bfflix/db"
	"github.com/bfflix/bfflix/pkg/pool"
	"github.com/bfflix/bfflix/pkg/validation"
)

const pullPageSize = 50

// watchlistCmd groups the watchlist subcommands.
func watchlistCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watchlist",
		Short: "Manage your watchlist",
	}

	cmd.AddCommand(
		watchlistListCmd(),
		watchlistAddCmd(),
		watchlistRemoveCmd(),
		watchlistPullCmd(),
	)

	return cmd
}

func watchlistListCmd() *cobra.Command {
	var cached bool
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show your watchlist",
		Run: func(cmd *cobra.Command, args []string) {
			if cached {
				listCachedWatchlist(cmd)
				return
			}

			if err := validation.ValidatePageSize(limit); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			result, err := api.FetchWatchlist(context.Background(), page, limit)
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch watchlist")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			if len(result.Items) == 0 {
				cmd.Println("Your watchlist is empty.")
				return
			}
			renderWatchlistTable(cmd, result.Items)
			cmd.Printf("Page %d of %d\n", result.Page, result.TotalPages)
		},
	}

	cmd.Flags().BoolVarP(&cached, "cached", "c", false, "List from the local cache instead of the API")
	cmd.Flags().IntVarP(&page, "page", "p", 1, "Page number to fetch")
	cmd.Flags().IntVarP(&limit, "limit", "l", 25, "Number of items per page")

	return cmd
}

func listCachedWatchlist(cmd *cobra.Command) {
	repo := db.NewWatchlistRepository(db.Db)
	entries, err := repo.List(context.Background())
	if err != nil {
		log.Error().Err(err).Msg("Failed to read watchlist cache")
		cmd.PrintErrln("Error: Unable to read the local watchlist cache.")
		return
	}
	if len(entries) == 0 {
		cmd.Println("The local cache is empty. Use `bfflix watchlist pull` to populate it.")
		return
	}

	items := make([]client.WatchlistItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, client.WatchlistItem{
			ID: e.ID, TitleID: e.TitleID, Title: e.Title,
			MediaType: e.MediaType, Status: e.Status, Rating: e.Rating, AddedAt: e.AddedAt,
		})
	}
	renderWatchlistTable(cmd, items)
}

func watchlistAddCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "add [titleID]",
		Short: "Add a movie or show to your watchlist",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("title ID", args[0]); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := validation.ValidateWatchStatus(status); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			item, err := api.AddToWatchlist(context.Background(), args[0], status)
			if err != nil {
				log.Error().Err(err).Msg("Failed to add to watchlist")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Printf("Added %q to your watchlist.\n", item.Title)
		},
	}

	cmd.Flags().StringVarP(&status, "status", "s", "planned", "Watch status [planned, watching, watched]")

	return cmd
}

func watchlistRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove [id]",
		Short: "Remove an entry from your watchlist",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cmd.PrintErrln("Error: Entry ID must be a number.")
				return
			}
			if err := validation.ValidateItemID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.RemoveFromWatchlist(context.Background(), id); err != nil {
				log.Error().Err(err).Msg("Failed to remove from watchlist")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Entry removed.")
		},
	}
}

func watchlistPullCmd() *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "pull",
		Short: "Download your full watchlist into the local cache",
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateWorkerCount(workers); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}
			if err := pullWatchlist(cmd, workers); err != nil {
				cmd.PrintErrln("Error:", userFacingError(err).Message)
			}
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 4, "Number of pages to fetch concurrently")

	return cmd
}

// pullWatchlist replaces the local cache with the full remote watchlist.
// The first page reveals the total page count; remaining pages are fetched
// through a bounded worker pool.
func pullWatchlist(cmd *cobra.Command, workers int) error {
	ctx := context.Background()
	api := newAPIClient()
	repo := db.NewWatchlistRepository(db.Db)

	first, err := api.FetchWatchlist(ctx, 1, pullPageSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch watchlist")
		return err
	}

	if err := repo.Clear(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to clear watchlist cache")
		return err
	}

	bar := progressbar.Default(int64(max(first.TotalPages, 1)), "Pulling watchlist")
	storePage := func(items []client.WatchlistItem) error {
		for _, item := range items {
			entry := db.WatchlistEntry{
				ID: item.ID, TitleID: item.TitleID, Title: item.Title,
				MediaType: item.MediaType, Status: item.Status, Rating: item.Rating, AddedAt: item.AddedAt,
			}
			if err := repo.Put(ctx, entry); err != nil {
				return fmt.Errorf("failed to cache watchlist entry %d: %w", item.ID, err)
			}
		}
		return nil
	}

	if err := storePage(first.Items); err != nil {
		return err
	}
	_ = bar.Add(1)

	var pages []int
	for p := 2; p <= first.TotalPages; p++ {
		pages = append(pages, p)
	}

	errs := pool.Run(ctx, pages, workers, func(ctx context.Context, page int) error {
		result, err := api.FetchWatchlist(ctx, page, pullPageSize)
		if err != nil {
			return fmt.Errorf("failed to fetch watchlist page %d: %w", page, err)
		}
		if err := storePage(result.Items); err != nil {
			return err
		}
		_ = bar.Add(1)
		return nil
	})
	if len(errs) > 0 {
		for _, e := range errs {
			log.Error().Err(e).Msg("Watchlist pull error")
		}
		return errs[0]
	}

	cmd.Printf("Pulled %d page(s) into the local cache.\n", max(first.TotalPages, 1))
	return nil
}

// renderWatchlistTable prints watchlist items as a table.
func renderWatchlistTable(cmd *cobra.Command, items []client.WatchlistItem) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"ID", "Title", "Type", "Status", "Rating", "Added"})
	for _, item := range items {
		rating := "-"
		if item.Rating > 0 {
			rating = strconv.Itoa(item.Rating)
		}
		table.Append([]string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			item.MediaType,
			item.Status,
			rating,
			item.AddedAt,
		})
	}
	table.Render()
}
