package teetime

import (
	"net/url"
	"strings"

	"github.com/google/go-querystring/query"
)

// FirstPage is the only results page ever requested
const FirstPage = 1

// Params is the marketplace query for one search
type Params struct {
	StartDate string `url:"start_date"`
	CourseIDs string `url:"course_ids"`
	Holes     string `url:"holes"`
	Page      int    `url:"page"`
}

// BuildParams maps criteria and the configured course identifiers to query parameters
func BuildParams(c SearchCriteria, courseIDs []string) Params {
	return Params{
		StartDate: c.DateString(),
		CourseIDs: strings.Join(courseIDs, ","),
		Holes:     c.HolesString(),
		Page:      FirstPage,
	}
}

// Values encodes the parameters as a query string mapping
func (p Params) Values() url.Values {
	// query.Values only fails for non-struct input
	v, _ := query.Values(p)
	return v
}
