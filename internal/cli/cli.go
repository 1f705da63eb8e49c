package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/teetimes/internal/config"
	"github.com/pfrederiksen/teetimes/internal/discover"
	"github.com/pfrederiksen/teetimes/internal/logger"
	"github.com/pfrederiksen/teetimes/internal/marketplace"
	"github.com/pfrederiksen/teetimes/internal/teetime"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess      = 0
	ExitError        = 1
	ExitInvalidInput = 2
)

// noneSelected is the interactive answer for an empty hole selection
const noneSelected = "none"

// exitError carries a non-zero exit status out of a command without an
// extra error message
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

// ClubFetcher looks up a club page by slug
type ClubFetcher interface {
	FetchClub(slug string) (*discover.Club, error)
}

// Swapped out in tests
var (
	newFetcher = func(cfg *config.Config) Fetcher {
		return marketplace.NewClient(cfg)
	}
	newClubFetcher = func() ClubFetcher {
		return discover.New()
	}
	now = time.Now
)

type options struct {
	date        string
	holes       string
	format      string
	interactive bool
	envFile     string
	coursesFile string
	logLevel    string
	verbose     bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "teetimes",
		Short: "Find open tee times on the Chronogolf marketplace",
		Long: `A CLI tool to search the Chronogolf marketplace for tee times.
Searches the configured courses for one date and prints the available
tee times as a table. Requires CHRONO_COOKIE (environment or .env file).`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logger.ParseLevel(opts.logLevel)
			if err != nil {
				return err
			}
			if opts.verbose {
				level = logger.LevelDebug
			}
			logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.date, "date", "", "Date to search, YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&opts.holes, "holes", "9,18", "Comma-separated hole filters: 9, 18 or both")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "Prompt for searches until q or end of input")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Optional .env file to load before reading the environment")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.PersistentFlags().StringVar(&opts.coursesFile, "courses-file", "", "JSON course list (or env: "+config.EnvCoursesFile+")")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")

	cmd.AddCommand(newCoursesCmd(opts), newDiscoverCmd(opts))

	return cmd
}

// runSearch is the main command logic
func runSearch(cmd *cobra.Command, opts *options) error {
	format, err := ParseOutputFormat(opts.format)
	if err != nil {
		return err
	}

	cfg, err := config.Load(config.Options{
		EnvFile:     opts.envFile,
		CoursesFile: opts.coursesFile,
	})
	if err != nil {
		if errors.Is(err, config.ErrMissingCookie) {
			return fmt.Errorf("configuration error: %w", err)
		}
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Debug("Loaded config", logger.Fields{
		"base_url": cfg.BaseURL,
		"courses":  len(cfg.Courses),
	})

	p := NewPresenter(newFetcher(cfg), cmd.OutOrStdout(), cmd.ErrOrStderr(), format)
	p.now = now
	defer logger.LogMetrics()

	if opts.interactive {
		return runInteractive(p, cmd.InOrStdin(), cmd.ErrOrStderr())
	}

	criteria, err := criteriaFromInput(opts.date, opts.holes, now())
	if err != nil {
		return &exitError{code: p.Reject(err).ExitCode()}
	}

	if code := p.Search(criteria).ExitCode(); code != ExitSuccess {
		return &exitError{code: code}
	}
	return nil
}

// runInteractive reads date and hole answers from in, one search per pair.
// Failed searches are reported and the loop continues.
func runInteractive(p *Presenter, in io.Reader, prompt io.Writer) error {
	scanner := bufio.NewScanner(in)
	ask := func(question string) (string, bool) {
		fmt.Fprint(prompt, question)
		if !scanner.Scan() {
			fmt.Fprintln(prompt)
			return "", false
		}
		answer := strings.TrimSpace(scanner.Text())
		if strings.EqualFold(answer, "q") {
			return "", false
		}
		return answer, true
	}

	fmt.Fprintln(prompt, "Chronogolf tee time finder. Enter q to quit.")

	for {
		today := now().Format(teetime.DateLayout)

		date, ok := ask(fmt.Sprintf("Date [%s]: ", today))
		if !ok {
			break
		}
		holes, ok := ask(fmt.Sprintf("Holes (9,18 or %s) [9,18]: ", noneSelected))
		if !ok {
			break
		}

		switch {
		case holes == "":
			holes = "9,18"
		case strings.EqualFold(holes, noneSelected):
			holes = ""
		}

		criteria, err := criteriaFromInput(date, holes, now())
		if err != nil {
			p.Reject(err)
			continue
		}
		p.Search(criteria)
	}

	return scanner.Err()
}

func criteriaFromInput(date, holes string, at time.Time) (teetime.SearchCriteria, error) {
	d, err := teetime.ParseDate(date, at)
	if err != nil {
		return teetime.SearchCriteria{}, err
	}
	h, err := teetime.ParseHoleFilters(holes)
	if err != nil {
		return teetime.SearchCriteria{}, err
	}
	return teetime.NewSearchCriteria(d, h), nil
}

func newCoursesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List the courses searched by default",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(opts.format)
			if err != nil {
				return err
			}

			path := opts.coursesFile
			if path == "" {
				path = os.Getenv(config.EnvCoursesFile)
			}
			courses, err := config.LoadCourses(path)
			if err != nil {
				return err
			}

			return WriteCourses(cmd.OutOrStdout(), courses, format)
		},
	}
}

func newDiscoverCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "discover <club-slug>",
		Short: "Look up course identifiers on a Chronogolf club page",
		Long: `Fetches https://www.chronogolf.com/club/<club-slug> and lists the club's
courses with the identifiers used by searches. Use --format json to get
entries that can be pasted into a courses file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ParseOutputFormat(opts.format)
			if err != nil {
				return err
			}

			logger.Debug("Fetching club page", logger.Fields{"slug": args[0]})

			club, err := newClubFetcher().FetchClub(args[0])
			if err != nil {
				return fmt.Errorf("discovering club: %w", err)
			}

			courses := club.ConfigCourses()
			if format == FormatText {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s, %s): %d courses\n", club.Name, club.City, club.Province, len(courses))
			}
			return WriteCourses(cmd.OutOrStdout(), courses, format)
		},
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		var exit *exitError
		if errors.As(err, &exit) {
			os.Exit(exit.code)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
