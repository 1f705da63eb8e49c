package marketplace

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/teetimes/internal/config"
	"github.com/pfrederiksen/teetimes/internal/teetime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCriteria = teetime.NewSearchCriteria(
	time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	[]teetime.HoleFilter{teetime.Holes9, teetime.Holes18},
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.Config{
		BaseURL:   baseURL,
		UserAgent: "Mozilla/5.0",
		Cookie:    "session=secret",
		Courses: []config.Course{
			{ID: "course-a", Name: "South Mountain"},
			{ID: "course-b", Name: "Riverbend"},
		},
	})
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body)) // nolint:errcheck
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchTeeTimes_Request(t *testing.T) {
	var got *http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"data":[]}`)) // nolint:errcheck
	}))
	defer server.Close()

	_, err := newTestClient(server.URL + "/marketplace/v2/teetimes").FetchTeeTimes(testCriteria)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/marketplace/v2/teetimes", got.URL.Path)
	assert.Equal(t, "Mozilla/5.0", got.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", got.Header.Get("Accept"))
	assert.Equal(t, "session=secret", got.Header.Get("Cookie"))

	q := got.URL.Query()
	assert.Len(t, q, 4)
	assert.Equal(t, "2024-06-01", q.Get("start_date"))
	assert.Equal(t, "course-a,course-b", q.Get("course_ids"))
	assert.Equal(t, "9,18", q.Get("holes"))
	assert.Equal(t, "1", q.Get("page"))
}

func TestFetchTeeTimes_Success(t *testing.T) {
	server := serve(t, http.StatusOK, `{"data":[{"date":"2024-06-01","time":"08:00","course":{"name":"Riverbend"},"holes":"9","green_fee":{"price":45}}]}`)

	records, err := newTestClient(server.URL).FetchTeeTimes(testCriteria)
	require.NoError(t, err)

	rows := teetime.Normalize(records)
	require.Len(t, rows, 1)

	want := 45.0
	assert.Equal(t, teetime.DisplayRow{
		Date:   "2024-06-01",
		Time:   "08:00",
		Course: "Riverbend",
		Holes:  "9",
		Price:  &want,
	}, rows[0])
}

func TestFetchTeeTimes_MissingNestedObjects(t *testing.T) {
	server := serve(t, http.StatusOK, `{"data":[{"date":"2024-06-01","time":"08:00"}]}`)

	records, err := newTestClient(server.URL).FetchTeeTimes(testCriteria)
	require.NoError(t, err)

	rows := teetime.Normalize(records)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-06-01", rows[0].Date)
	assert.Equal(t, "08:00", rows[0].Time)
	assert.Empty(t, rows[0].Course)
	assert.Nil(t, rows[0].Price)
}

func TestFetchTeeTimes_StatusErrors(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound, http.StatusInternalServerError} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := serve(t, status, `{"data":[{"date":"2024-06-01"}],"error":"ignored"}`)

			records, err := newTestClient(server.URL).FetchTeeTimes(testCriteria)
			assert.Empty(t, records)

			var fetchErr *FetchError
			require.True(t, errors.As(err, &fetchErr), "want *FetchError, got %v", err)
			assert.Equal(t, status, fetchErr.StatusCode)
			assert.Contains(t, err.Error(), strconv.Itoa(status))
		})
	}
}

func TestFetchTeeTimes_SingleRequest(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).FetchTeeTimes(testCriteria)
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "failed fetches must not be retried")
}

func TestFetchTeeTimes_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	records, err := newTestClient(url).FetchTeeTimes(testCriteria)
	assert.Nil(t, records)
	require.Error(t, err)

	var fetchErr *FetchError
	assert.False(t, errors.As(err, &fetchErr))
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{name: "data list", body: `{"data":[{"date":"a"},{"date":"b"}]}`, want: 2},
		{name: "empty data", body: `{"data":[]}`, want: 0},
		{name: "data absent", body: `{"status":"ok"}`, want: 0},
		{name: "data null", body: `{"data":null}`, want: 0},
		{name: "data not a list", body: `{"data":{"date":"a"}}`, want: 0},
		{name: "top-level array", body: `[{"date":"a"}]`, want: 0},
		{name: "top-level string", body: `"nothing"`, want: 0},
		{name: "non-object entries kept as empty records", body: `{"data":[1,null,{"date":"a"}]}`, want: 3},
		{name: "not json", body: `<html>login</html>`, wantErr: true},
		{name: "empty body", body: ``, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseResponse(strings.NewReader(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, records)
			assert.Len(t, records, tt.want)
		})
	}
}

func TestParseResponse_KeepsNumbers(t *testing.T) {
	records, err := ParseResponse(strings.NewReader(`{"data":[{"holes":18,"green_fee":{"price":62.5}}]}`))
	require.NoError(t, err)

	row := teetime.Normalize(records)[0]
	assert.Equal(t, "18", row.Cells()[3])
	assert.Equal(t, 62.5, *row.Price)
}
