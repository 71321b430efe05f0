// Package google provides service-account authentication for Google
// APIs with domain-wide delegation.
//
// roomaudit reads room calendars and the identity directory on behalf
// of other principals, so every HTTP client is built for an explicit
// impersonated subject: the room whose calendar is being read, or the
// admin identity used for directory lookups. Credentials are loaded
// once from a service-account key file; clients are derived per subject
// from the same key.
package google
