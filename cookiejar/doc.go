// Package cookiejar wraps the standard cookie jar with public-suffix
// domain handling and optional persistence: a Storage provider loads
// cookies at construction and Flush writes them back out. Attach the
// jar to an engine via its CookieJar configuration.
package cookiejar
