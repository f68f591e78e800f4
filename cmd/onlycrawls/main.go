// Package main provides the entry point for the onlycrawls CLI.
//
// onlycrawls performs a depth-bounded, breadth-first crawl of a single
// website, restricted to same-domain links, and exports the deduplicated
// list of reachable pages as CSV.
//
// Usage:
//
//	onlycrawls https://books.toscrape.com
//	onlycrawls --depth 2 --tasks 100 -o pages.csv https://example.com
//
// See --help for all available options.
package main

// main is the entry point for onlycrawls.
func main() {
	Execute()
}
