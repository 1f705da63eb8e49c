package discover

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/teetimes/internal/config"
)

const (
	ClubPageURL = "https://www.chronogolf.com/club/"
	UserAgent   = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
	Timeout     = 30 * time.Second
)

var (
	ErrNoClubData = errors.New("no club data on page")
	ErrNotFound   = errors.New("club not found")
)

// Club is the subset of a club page's data needed to configure searches
type Club struct {
	ID       int          `json:"id"`
	UUID     string       `json:"uuid"`
	Name     string       `json:"name"`
	Slug     string       `json:"slug"`
	City     string       `json:"city"`
	Province string       `json:"province"`
	Courses  []ClubCourse `json:"courses"`
}

// ClubCourse is one course of a club
type ClubCourse struct {
	ID    int    `json:"id"`
	UUID  string `json:"uuid"`
	Name  string `json:"name"`
	Holes int    `json:"holes"`
}

// Scraper fetches and parses club pages
type Scraper struct {
	client  *http.Client
	baseURL string
}

// New creates a Scraper for the public Chronogolf site
func New() *Scraper {
	return &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: ClubPageURL,
	}
}

// FetchClub fetches the club page for slug, e.g. "riverbend-golf-course"
func (s *Scraper) FetchClub(slug string) (*Club, error) {
	slug = strings.Trim(strings.TrimSpace(slug), "/")
	if slug == "" {
		return nil, fmt.Errorf("club slug is required")
	}

	req, err := http.NewRequest("GET", s.baseURL+url.PathEscape(slug), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return parseClub(resp.Body)
}

// parseClub extracts the club from the page's __NEXT_DATA__ script
func parseClub(r io.Reader) (*Club, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	script := doc.Find("script#__NEXT_DATA__").First()
	if script.Length() == 0 {
		return nil, ErrNoClubData
	}

	var nextData struct {
		Props struct {
			PageProps struct {
				Club Club `json:"club"`
			} `json:"pageProps"`
		} `json:"props"`
	}
	if err := json.Unmarshal([]byte(script.Text()), &nextData); err != nil {
		return nil, fmt.Errorf("parsing __NEXT_DATA__: %w", err)
	}

	club := nextData.Props.PageProps.Club
	if club.ID == 0 && club.UUID == "" {
		return nil, ErrNoClubData
	}

	return &club, nil
}

// ConfigCourses converts the club's courses to config entries. Courses without a
// UUID cannot be searched and are skipped.
func (c *Club) ConfigCourses() []config.Course {
	courses := make([]config.Course, 0, len(c.Courses))
	for _, cc := range c.Courses {
		if cc.UUID == "" {
			continue
		}
		name := cc.Name
		if name == "" {
			name = c.Name
		}
		courses = append(courses, config.Course{ID: cc.UUID, Name: name})
	}
	return courses
}
