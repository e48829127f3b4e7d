// Package httputil provides HTTP utilities for fetching remote recipe data.
//
// # Overview
//
//   - [Client]: GET requests with a user agent, size limit and retries
//   - [Retry]: Automatic retry with exponential backoff
//
// # Retry
//
// [Retry] only repeats operations whose error was wrapped with [Retryable]:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Everything else, including 404, is returned immediately. The delay doubles
// after each failed attempt and waiting stops early when the context ends.
//
// # Configuration
//
// Default settings are suitable for dataset downloads:
//
//   - Timeout: 30 seconds per request
//   - Max attempts: 3
//   - Base backoff: 1 second
//   - Max body size: 8 MiB
package httputil
