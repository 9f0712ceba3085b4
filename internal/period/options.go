package period

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/alexanderramin/mspreport/internal/domain"
)

// DueDateLayout is the day-first layout accepted for due dates. Single digit
// days and months are allowed.
const DueDateLayout = "2/1/2006"

var (
	// ErrInvalidDueDate is returned when due date text is not DD/MM/YYYY.
	ErrInvalidDueDate = errors.New("invalid due date")
	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid bucketing options")
)

// Options controls how a task table is split into reporting windows.
type Options struct {
	DueDate        time.Time
	PeriodDays     int
	PeriodCount    int
	IncompleteOnly bool
	WIPColumn      bool

	// Optional row filter: keep rows whose FilterField value matches
	// FilterPattern (a regular expression).
	FilterField   string
	FilterPattern string
}

// DefaultOptions returns weekly windows, five periods, incomplete tasks only.
func DefaultOptions(now time.Time) Options {
	return Options{
		DueDate:        domain.Day(now),
		PeriodDays:     7,
		PeriodCount:    5,
		IncompleteOnly: true,
		WIPColumn:      true,
	}
}

// ParseDueDate reads a day-first date as a UTC calendar day. Empty text means
// the date now shows in its own location.
func ParseDueDate(text string, now time.Time) (time.Time, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Day(now), nil
	}
	t, err := time.ParseInLocation(DueDateLayout, text, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected DD/MM/YYYY", ErrInvalidDueDate, text)
	}
	return t, nil
}

// Validate checks every option and reports all problems at once.
func (o Options) Validate() error {
	var errs []error
	if o.DueDate.IsZero() {
		errs = append(errs, fmt.Errorf("due date is required"))
	}
	if o.PeriodDays < 1 {
		errs = append(errs, fmt.Errorf("period length must be at least 1 day, got %d", o.PeriodDays))
	}
	if o.PeriodCount < 1 {
		errs = append(errs, fmt.Errorf("period count must be at least 1, got %d", o.PeriodCount))
	}
	if o.FilterField != "" {
		if _, ok := domain.LookupField(o.FilterField); !ok {
			errs = append(errs, fmt.Errorf("filter field %q is not a project field", o.FilterField))
		}
		if _, err := regexp.Compile(o.FilterPattern); err != nil {
			errs = append(errs, fmt.Errorf("filter pattern: %w", err))
		}
	} else if o.FilterPattern != "" {
		errs = append(errs, fmt.Errorf("filter pattern given without a filter field"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}
	return nil
}

// prepare applies the incomplete-only and field filters.
func (o Options) prepare(src domain.Table) (domain.Table, error) {
	tbl := src
	if o.IncompleteOnly {
		tbl = tbl.Incomplete()
	} else {
		tbl = domain.NewTable(src.Columns, src.Rows)
	}
	if o.FilterField == "" {
		return tbl, nil
	}
	re, err := regexp.Compile(o.FilterPattern)
	if err != nil {
		return domain.Table{}, err
	}
	return tbl.MatchField(o.FilterField, re)
}
