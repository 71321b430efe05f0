package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the roomaudit application
var rootCmd = &cobra.Command{
	Use:   "roomaudit",
	Short: "Audits meeting-room calendars for ghost meetings and wasted capacity",
	Long: `roomaudit scans the calendars of meeting rooms in a Google Workspace
domain and reports two classes of problems:

  - ghost meetings, whose organizer account is disabled or no longer
    exists in the directory
  - underutilized bookings, where a high-capacity room is reserved
    for very few attendees`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "roomaudit version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newGhostsCmd())
	rootCmd.AddCommand(newUtilizationCmd())
	rootCmd.AddCommand(newRoomsCmd())
}
