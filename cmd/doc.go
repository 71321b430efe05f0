// Package cmd implements the roomaudit command-line interface.
//
// The root command exposes three subcommands:
//
//	ghosts       full census of meetings with ghost-organizer flags
//	utilization  bookings where a large room holds very few people
//	rooms        list the bookable rooms the audits would cover
//
// Commands load the JSON configuration file, overlay any flags the
// user set, wire the Google Workspace adapters and run the audit.
// A run exits non-zero only on fatal configuration or startup errors;
// partial-data runs still write a report and exit zero with a warning
// summary.
package cmd
