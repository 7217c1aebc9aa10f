package cmd

import (
	"context"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/bfflix/bfflix/pkg/validation"
)

// circlesCmd groups the circles subcommands.
func circlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "circles",
		Short: "Manage the circles you share activity with",
	}

	cmd.AddCommand(
		circlesListCmd(),
		circlesCreateCmd(),
		circlesJoinCmd(),
		circlesLeaveCmd(),
	)

	return cmd
}

func circlesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show your circles",
		Run: func(cmd *cobra.Command, args []string) {
			api := newAPIClient()
			circles, err := api.FetchCircles(context.Background())
			if err != nil {
				log.Error().Err(err).Msg("Failed to fetch circles")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			if len(circles) == 0 {
				cmd.Println("You are not a member of any circle.")
				return
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"ID", "Name", "Members", "Description"})
			for _, circle := range circles {
				table.Append([]string{
					strconv.FormatInt(circle.ID, 10),
					circle.Name,
					strconv.Itoa(circle.MemberCount),
					circle.Description,
				})
			}
			table.Render()
		},
	}
}

func circlesCreateCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new circle",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			if err := validation.ValidateNonEmptyString("circle name", args[0]); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			circle, err := api.CreateCircle(context.Background(), args[0], description)
			if err != nil {
				log.Error().Err(err).Msg("Failed to create circle")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Printf("Created circle %q (id %d).\n", circle.Name, circle.ID)
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "Circle description")

	return cmd
}

func circlesJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join [id]",
		Short: "Join an existing circle",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cmd.PrintErrln("Error: Circle ID must be a number.")
				return
			}
			if err := validation.ValidateItemID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.JoinCircle(context.Background(), id); err != nil {
				log.Error().Err(err).Msg("Failed to join circle")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Joined the circle.")
		},
	}
}

func circlesLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave [id]",
		Short: "Leave a circle",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				cmd.PrintErrln("Error: Circle ID must be a number.")
				return
			}
			if err := validation.ValidateItemID(id); err != nil {
				cmd.PrintErrln("Error:", err)
				return
			}

			api := newAPIClient()
			if err := api.LeaveCircle(context.Background(), id); err != nil {
				log.Error().Err(err).Msg("Failed to leave circle")
				cmd.PrintErrln("Error:", userFacingError(err).Message)
				return
			}
			cmd.Println("Left the circle.")
		},
	}
}
