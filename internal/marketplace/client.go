package marketplace

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dghubble/sling"
	"github.com/pfrederiksen/teetimes/internal/config"
	"github.com/pfrederiksen/teetimes/internal/logger"
	"github.com/pfrederiksen/teetimes/internal/teetime"
)

// FetchError reports a non-success HTTP status from the marketplace
type FetchError struct {
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("API returned status %d", e.StatusCode)
}

// Client is a client for the marketplace tee-time endpoint
type Client struct {
	baseURL    string
	userAgent  string
	cookie     string
	courseIDs  []string
	httpClient *http.Client
}

// NewClient creates a client from cfg. The HTTP client has no timeout;
// a search blocks until the server answers or the connection fails.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		userAgent:  cfg.UserAgent,
		cookie:     cfg.Cookie,
		courseIDs:  cfg.CourseIDs(),
		httpClient: &http.Client{},
	}
}

// response is the expected top-level shape
type response struct {
	Data []json.RawMessage `json:"data"`
}

// FetchTeeTimes runs one search and returns the raw records in API order
func (c *Client) FetchTeeTimes(criteria teetime.SearchCriteria) ([]teetime.Record, error) {
	params := teetime.BuildParams(criteria, c.courseIDs)

	req, err := sling.New().
		Get(c.baseURL).
		Set("User-Agent", c.userAgent).
		Set("Accept", "application/json").
		Set("Cookie", c.cookie).
		QueryStruct(params).
		Request()
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	logger.Debug("Fetching tee times", logger.Fields{
		"start_date": params.StartDate,
		"holes":      params.Holes,
		"courses":    len(c.courseIDs),
	})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	logger.RecordTiming("marketplace.fetch", time.Since(start))
	if err != nil {
		logger.IncrCounter("marketplace.fetch.failed")
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.IncrCounter("marketplace.fetch.failed")
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	records, err := ParseResponse(resp.Body)
	if err != nil {
		logger.IncrCounter("marketplace.fetch.failed")
		return nil, err
	}

	logger.IncrCounter("marketplace.fetch.ok")
	logger.Debug("Fetched tee times", logger.Fields{"records": len(records)})

	return records, nil
}

// ParseResponse decodes a response body into records. The body must be JSON;
// a top-level value other than an object holding a "data" list decodes to no
// records. List entries that are not objects become empty records.
func ParseResponse(r io.Reader) ([]teetime.Record, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("parsing response: invalid JSON")
	}

	var result response
	if err := json.Unmarshal(body, &result); err != nil {
		// Valid JSON of another shape: an array, a string, or "data" not a list
		return []teetime.Record{}, nil
	}

	records := make([]teetime.Record, 0, len(result.Data))
	for _, raw := range result.Data {
		records = append(records, decodeRecord(raw))
	}
	return records, nil
}

func decodeRecord(raw json.RawMessage) teetime.Record {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var rec teetime.Record
	if err := dec.Decode(&rec); err != nil || rec == nil {
		return teetime.Record{}
	}
	return rec
}
