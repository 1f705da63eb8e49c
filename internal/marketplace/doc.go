// Package marketplace fetches tee times from the Chronogolf marketplace API.
//
// A Client issues exactly one GET per search: no pagination, no retries.
// Non-success statuses are reported as *FetchError; a successful body is
// decoded leniently, so any shape other than an object with a "data" list
// yields zero records.
package marketplace
