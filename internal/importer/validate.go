package importer

import (
	"fmt"
	"time"
)

var dateLayouts = []string{
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.ParseInLocation(layout, s, time.UTC)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// reportable reports whether a task row takes part in reports. Null rows and
// the project summary row (outline level 0) do not.
func reportable(t TaskImport) bool {
	return !t.IsNull && t.OutlineLevel > 0
}

// ValidateProjectSchema checks the document before conversion.
// Returns a slice of all validation errors found.
func ValidateProjectSchema(schema *ProjectSchema) []error {
	var errs []error

	uids := make(map[int]bool)
	prevLevel := 0
	for i, t := range schema.Tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.IsNull {
			continue
		}

		if uids[t.UID] {
			errs = append(errs, fmt.Errorf("%s.uid: duplicate uid %d", prefix, t.UID))
		}
		uids[t.UID] = true

		if t.OutlineLevel < 0 {
			errs = append(errs, fmt.Errorf("%s.outline_level: must not be negative, got %d", prefix, t.OutlineLevel))
			continue
		}
		if !reportable(t) {
			continue
		}
		if t.OutlineLevel > prevLevel+1 {
			errs = append(errs, fmt.Errorf("%s.outline_level: jumps from %d to %d", prefix, prevLevel, t.OutlineLevel))
		}
		prevLevel = t.OutlineLevel

		if t.PercentComplete < 0 || t.PercentComplete > 100 {
			errs = append(errs, fmt.Errorf("%s.percent_complete: must be 0-100, got %d", prefix, t.PercentComplete))
		}

		start, startErr := requiredDate(prefix+".start", t.Start)
		finish, finishErr := requiredDate(prefix+".finish", t.Finish)
		if startErr != nil {
			errs = append(errs, startErr)
		}
		if finishErr != nil {
			errs = append(errs, finishErr)
		}
		if startErr == nil && finishErr == nil && finish.Before(start) {
			errs = append(errs, fmt.Errorf("%s: finish %q is before start %q", prefix, t.Finish, t.Start))
		}

		errs = append(errs, validateOptionalDate(prefix+".deadline", t.Deadline)...)
		errs = append(errs, validateOptionalDate(prefix+".actual_start", t.ActualStart)...)
		errs = append(errs, validateOptionalDate(prefix+".actual_finish", t.ActualFinish)...)
		for j, b := range t.Baselines {
			bp := fmt.Sprintf("%s.baselines[%d]", prefix, j)
			errs = append(errs, validateOptionalDate(bp+".start", b.Start)...)
			errs = append(errs, validateOptionalDate(bp+".finish", b.Finish)...)
		}
	}

	return errs
}

func requiredDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date %q", field, s)
	}
	return t, nil
}

func validateOptionalDate(field, s string) []error {
	if s == "" {
		return nil
	}
	if _, err := parseDate(s); err != nil {
		return []error{fmt.Errorf("%s: invalid date %q", field, s)}
	}
	return nil
}
