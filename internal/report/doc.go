// Package report runs a query file against loaded packages and renders the
// result as YAML.
//
// Types are inspected concurrently, bounded by Options.Limit. Entries keep the
// order of the queries in the file regardless of completion order.
package report
