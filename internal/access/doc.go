// Package access implements the client-side folder password gate.
//
// A folder may carry a password held only by the client. Protected actions on
// such a folder (rename, delete, listing its stories) first ask for the
// password and, on an exact match, record a grant that lasts DefaultTTL.
//
// The gate is advisory. The HTTP API never checks it, so any client that calls
// the API directly bypasses it entirely. It is not a security boundary and must
// not be relied on to protect data; passwords are stored in plain text in the
// client's state.
package access
