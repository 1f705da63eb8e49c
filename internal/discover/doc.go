// Package discover looks up course identifiers on Chronogolf club pages.
//
// Club pages embed their data as JSON in a __NEXT_DATA__ script tag. The
// scraper reads that tag and returns the club's courses with the UUIDs the
// marketplace API expects, ready to paste into a courses file.
package discover
