package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newRoomsCmd() *cobra.Command {
	var flags commonFlags
	var minCapacity int

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List the bookable rooms an audit would cover",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := flags.setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer env.shutdown(ctx)

			rooms, err := env.resolveRooms(ctx, minCapacity)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ADDRESS\tNAME\tCAPACITY")
			for _, room := range rooms {
				fmt.Fprintf(tw, "%s\t%s\t%d\n", room.Address, room.DisplayName, room.Capacity)
			}
			return tw.Flush()
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&minCapacity, "min-capacity", 0, "only list rooms with at least this capacity")
	return cmd
}
