// Package workspace implements the calendar and directory interfaces
// on top of Google Workspace.
//
// Room calendars are read through the Calendar API; identities and
// room resources through the Admin SDK Directory API. Every calendar
// session impersonates the room whose calendar it reads (domain-wide
// delegation), and sessions are handed out through a checkout/return
// pool so a session is never shared across resources at the same time.
//
// The Calendar API paginates rather than failing on large result sets,
// so this adapter enforces its own per-query item ceiling and reports
// calendar.ErrTooManyResults when a window exceeds it. That keeps a
// single runaway window from holding thousands of event refs in memory
// and from burning the API quota in one burst; the fetcher reacts by
// re-querying in month chunks.
package workspace
