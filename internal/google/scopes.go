package google

// Scopes required by roomaudit. The audit never writes to calendars or
// the directory, so everything is read-only.
//
// The scopes provide access to:
//   - Calendar: read room calendars
//   - Admin SDK Directory: read users (enabled state) and calendar
//     resources (rooms, capacities)
var AuditScopes = []string{
	"https://www.googleapis.com/auth/calendar.readonly",
	"https://www.googleapis.com/auth/admin.directory.user.readonly",
	"https://www.googleapis.com/auth/admin.directory.resource.calendar.readonly",
}
