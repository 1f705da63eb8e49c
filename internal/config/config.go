package config

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBaseURL   = "https://www.chronogolf.com/marketplace/v2/teetimes"
	DefaultUserAgent = "Mozilla/5.0"

	EnvCookie      = "CHRONO_COOKIE"
	EnvBaseURL     = "TEETIMES_BASE_URL"
	EnvUserAgent   = "TEETIMES_USER_AGENT"
	EnvCoursesFile = "TEETIMES_COURSES_FILE"
)

// ErrMissingCookie is returned by Load when no session cookie is configured
var ErrMissingCookie = errors.New(EnvCookie + " is not set")

//go:embed data/courses.json
var defaultCourses []byte

// Course is one marketplace course
type Course struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Config is read once at startup and never mutated
type Config struct {
	BaseURL   string
	UserAgent string
	Cookie    string
	Courses   []Course
}

// Options override values that would otherwise come from the environment
type Options struct {
	EnvFile     string // .env path; a missing file is not an error
	CoursesFile string
}

// Load builds the Config from the environment
func Load(opts Options) (*Config, error) {
	if err := loadEnvFile(opts.EnvFile); err != nil {
		return nil, err
	}

	cookie := strings.TrimSpace(os.Getenv(EnvCookie))
	if cookie == "" {
		return nil, ErrMissingCookie
	}

	coursesFile := opts.CoursesFile
	if coursesFile == "" {
		coursesFile = os.Getenv(EnvCoursesFile)
	}

	courses, err := LoadCourses(coursesFile)
	if err != nil {
		return nil, err
	}

	return &Config{
		BaseURL:   getEnv(EnvBaseURL, DefaultBaseURL),
		UserAgent: getEnv(EnvUserAgent, DefaultUserAgent),
		Cookie:    cookie,
		Courses:   courses,
	}, nil
}

// LoadCourses reads the course list from path, or the embedded default when path is empty
func LoadCourses(path string) ([]Course, error) {
	data := defaultCourses
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading courses file: %w", err)
		}
	}

	var courses []Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("parsing courses: %w", err)
	}

	for i, c := range courses {
		if strings.TrimSpace(c.ID) == "" {
			return nil, fmt.Errorf("parsing courses: entry %d has no id", i)
		}
	}
	if len(courses) == 0 {
		return nil, errors.New("parsing courses: no courses configured")
	}

	return courses, nil
}

// CourseIDs returns the configured course identifiers in file order
func (c *Config) CourseIDs() []string {
	ids := make([]string, len(c.Courses))
	for i, course := range c.Courses {
		ids[i] = course.ID
	}
	return ids
}

// loadEnvFile seeds the environment from a .env file. Variables that are
// already set win over the file.
func loadEnvFile(path string) error {
	if path == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
