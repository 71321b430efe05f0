package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/roomaudit/roomaudit/internal/audit"
	"github.com/roomaudit/roomaudit/internal/export"
)

func newUtilizationCmd() *cobra.Command {
	var flags commonFlags
	var minCapacity, maxParticipants int

	cmd := &cobra.Command{
		Use:   "utilization",
		Short: "Report large rooms booked for very few people",
		Long: `Scan every audited room's calendar and write a CSV of bookings where
a room with at least the configured capacity is held by at most the
configured number of participants. Use it to find the 12-seat rooms
that standing 1:1s have quietly colonized.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := flags.setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer env.shutdown(ctx)

			if cmd.Flags().Changed("min-capacity") {
				env.cfg.MinimumCapacity = minCapacity
			}
			if cmd.Flags().Changed("max-participants") {
				env.cfg.MaxParticipants = maxParticipants
			}

			analysis := &audit.UtilizationAnalysis{
				MinimumCapacity: env.cfg.MinimumCapacity,
				MaxParticipants: env.cfg.MaxParticipants,
			}
			window, err := buildWindow(env.cfg)
			if err != nil {
				return err
			}
			// Rooms below the capacity threshold can never emit a row;
			// skip their calendars entirely.
			rooms, err := env.resolveRooms(ctx, env.cfg.MinimumCapacity)
			if err != nil {
				return err
			}

			auditor := audit.New(env.pool, env.dir, env.cfg.OrganizationSuffix, env.logger)
			auditor.Metrics = env.provider.Metrics()
			auditor.Tracer = env.provider.Tracer("audit")

			result, err := auditor.Run(ctx, rooms, window, analysis)
			if err != nil {
				return err
			}

			out, closeOut, err := openOutput(flags.output)
			if err != nil {
				return err
			}
			if err := export.WriteUtilizationCSV(out, result.Rows); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return fmt.Errorf("failed to close report: %w", err)
			}

			env.logger.Info("utilization audit finished",
				slog.String("run_id", result.RunID),
				slog.Int("rows", len(result.Rows)),
				slog.Int("skipped_resources", result.ResourceErrors))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&minCapacity, "min-capacity", 0, "override minimum_capacity from the config file")
	cmd.Flags().IntVar(&maxParticipants, "max-participants", 0, "override max_participants from the config file")
	return cmd
}
