package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/teetimes/internal/logger"
	"github.com/pfrederiksen/teetimes/internal/marketplace"
	"github.com/pfrederiksen/teetimes/internal/teetime"
)

// Fetcher runs one marketplace search
type Fetcher interface {
	FetchTeeTimes(criteria teetime.SearchCriteria) ([]teetime.Record, error)
}

// Outcome is the terminal state of one search
type Outcome int

const (
	OutcomeTable   Outcome = iota // rows were found and printed
	OutcomeEmpty                  // the search succeeded with no rows
	OutcomeWarning                // the input was rejected before any request
	OutcomeError                  // the request failed
)

// ExitCode maps an outcome to the process exit status
func (o Outcome) ExitCode() int {
	switch o {
	case OutcomeWarning:
		return ExitInvalidInput
	case OutcomeError:
		return ExitError
	default:
		return ExitSuccess
	}
}

// Presenter runs searches and reports each one with exactly one terminal
// message. Tables go to out, status messages to msg.
type Presenter struct {
	fetcher Fetcher
	out     io.Writer
	msg     io.Writer
	format  OutputFormat
	now     func() time.Time
}

// NewPresenter creates a Presenter writing results in format
func NewPresenter(fetcher Fetcher, out, msg io.Writer, format OutputFormat) *Presenter {
	return &Presenter{
		fetcher: fetcher,
		out:     out,
		msg:     msg,
		format:  format,
		now:     time.Now,
	}
}

// Search validates criteria, fetches, normalizes and displays the result.
// No request is made when validation fails.
func (p *Presenter) Search(criteria teetime.SearchCriteria) Outcome {
	if err := criteria.Validate(p.now()); err != nil {
		return p.Reject(err)
	}

	p.info("Fetching tee times...")

	records, err := p.fetcher.FetchTeeTimes(criteria)
	if err != nil {
		logger.Debug("Tee time fetch failed", logger.Fields{
			"date":  criteria.DateString(),
			"holes": criteria.HolesString(),
			"error": err.Error(),
		})

		var fetchErr *marketplace.FetchError
		if errors.As(err, &fetchErr) {
			p.fail("Error fetching tee times: %d", fetchErr.StatusCode)
		} else {
			p.fail("Error fetching tee times: %v", err)
		}
		return OutcomeError
	}

	rows := teetime.Normalize(records)
	result := &OutputResult{
		SearchedAt: p.now().UTC(),
		Date:       criteria.DateString(),
		Holes:      criteria.Holes,
		Count:      len(rows),
		TeeTimes:   rows,
	}

	if len(rows) == 0 {
		p.info("No tee times found.")
		if p.format == FormatJSON {
			p.write(result)
		}
		return OutcomeEmpty
	}

	logger.Info("Tee times found", logger.Fields{
		"date": criteria.DateString(),
		"rows": len(rows),
	})
	p.success("Found %d tee times.", len(rows))
	p.write(result)
	return OutcomeTable
}

// Reject reports invalid input as a warning
func (p *Presenter) Reject(err error) Outcome {
	if errors.Is(err, teetime.ErrNoHoleFilter) {
		p.warn("Please select at least one hole type.")
	} else {
		p.warn("Invalid search: %v", err)
	}
	return OutcomeWarning
}

func (p *Presenter) write(result *OutputResult) {
	if err := WriteOutput(p.out, result, p.format); err != nil {
		logger.Error("Writing output failed", nil, err)
	}
}

func (p *Presenter) info(format string, args ...interface{}) {
	p.message("INFO", format, args...)
}

func (p *Presenter) success(format string, args ...interface{}) {
	p.message("OK", format, args...)
}

func (p *Presenter) warn(format string, args ...interface{}) {
	p.message("WARNING", format, args...)
}

func (p *Presenter) fail(format string, args ...interface{}) {
	p.message("ERROR", format, args...)
}

func (p *Presenter) message(label, format string, args ...interface{}) {
	fmt.Fprintf(p.msg, "%s: %s\n", label, fmt.Sprintf(format, args...))
}
