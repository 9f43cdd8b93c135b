package db

// timeLayout is the storage format for every timestamp column. Values are
// written in UTC with fixed-width fractions so they sort as strings.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQL query fragments used across multiple functions
const (
	// sqlCookieColumns lists cookie columns in scan order.
	sqlCookieColumns = "name, value, domain, path, expires, secure, http_only, host_only"
)
