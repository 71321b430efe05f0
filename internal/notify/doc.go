// Package notify delivers ghost-meeting notification requests over
// SMTP.
//
// The audit core only emits NotificationRequest values; this package
// is the mail sink that turns them into RFC 5322 messages and hands
// them to an SMTP server. Delivery is best-effort per request: one
// bounced notification never stops the rest.
package notify
