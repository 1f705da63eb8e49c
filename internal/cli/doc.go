// Package cli implements the command-line interface for teetimes.
//
// The root command searches the Chronogolf marketplace for one date and hole
// selection and prints the results as a table (text or JSON). It runs once
// from flags, or as an interactive prompt loop where each entered search is
// handled on its own. The courses and discover subcommands list the configured
// courses and look up course identifiers for new clubs.
package cli
