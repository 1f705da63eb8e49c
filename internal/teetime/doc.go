// Package teetime holds the search criteria, request parameters and display
// rows for tee-time lookups.
//
// A search flows through this package twice: BuildParams turns a
// SearchCriteria into the marketplace query, and Normalize flattens the
// returned records into DisplayRows with a fixed set of columns. Neither
// step performs I/O.
package teetime
