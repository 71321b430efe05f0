package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/roomaudit/roomaudit/internal/audit"
	"github.com/roomaudit/roomaudit/internal/export"
	"github.com/roomaudit/roomaudit/internal/notify"
)

func newGhostsCmd() *cobra.Command {
	var flags commonFlags
	var noNotify bool

	cmd := &cobra.Command{
		Use:   "ghosts",
		Short: "Report meetings whose organizer account is disabled or gone",
		Long: `Scan every audited room's calendar and write a full census of its
meetings as CSV. Meetings whose organizer cannot be confirmed as an
active account (disabled or missing in the directory) are flagged as
ghost meetings; attendees of flagged meetings can optionally be
notified by email so the booking gets re-homed or cancelled.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			env, err := flags.setup(ctx, cmd)
			if err != nil {
				return err
			}
			defer env.shutdown(ctx)

			analysis, err := buildGhostAnalysis(env, noNotify)
			if err != nil {
				return err
			}
			window, err := buildWindow(env.cfg)
			if err != nil {
				return err
			}
			rooms, err := env.resolveRooms(ctx, 0)
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
			if err := export.WriteGhostCSV(out, result.Rows); err != nil {
				_ = closeOut()
				return err
			}
			if err := closeOut(); err != nil {
				return fmt.Errorf("failed to close report: %w", err)
			}

			failedSends := 0
			if len(result.Notifications) > 0 {
				mailer := notify.NewMailer(env.cfg.SMTP, env.logger)
				failedSends = mailer.SendAll(ctx, result.Notifications)
			}

			env.logger.Info("ghost audit finished",
				slog.String("run_id", result.RunID),
				slog.Int("rows", len(result.Rows)),
				slog.Int("notifications", len(result.Notifications)),
				slog.Int("failed_notifications", failedSends),
				slog.Int("skipped_resources", result.ResourceErrors))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&noNotify, "no-notify", false, "suppress notification emails even if enabled in the config")
	return cmd
}

func buildGhostAnalysis(env *environment, noNotify bool) (*audit.GhostAnalysis, error) {
	analysis := &audit.GhostAnalysis{
		Notify: env.cfg.Notifications.Enabled && !noNotify,
		From:   env.cfg.Notifications.From,
	}
	if src := env.cfg.Notifications.Subject; src != "" {
		tmpl, err := template.New("subject").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("invalid notifications.subject template: %w", err)
		}
		analysis.SubjectTemplate = tmpl
	}
	if src := env.cfg.Notifications.Body; src != "" {
		tmpl, err := template.New("body").Parse(src)
		if err != nil {
			return nil, fmt.Errorf("invalid notifications.body template: %w", err)
		}
		analysis.BodyTemplate = tmpl
	}
	return analysis, nil
}
