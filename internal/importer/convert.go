package importer

import (
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/mspreport/internal/domain"
)

// unassignedResourceUID is the placeholder resource Project writes for
// assignments without a resource.
const unassignedResourceUID = -65535

// Project is a converted document: its display name and task rows in
// document order, summary rows included.
type Project struct {
	Name  string
	Tasks []domain.TaskRecord
}

// Convert transforms a validated ProjectSchema into task records.
// Call ValidateProjectSchema first; Convert assumes the schema is valid.
func Convert(schema *ProjectSchema) (*Project, error) {
	resources := make(map[int]string, len(schema.Resources))
	for _, r := range schema.Resources {
		resources[r.UID] = r.Name
	}

	assigned := make(map[int][]string)
	for _, a := range schema.Assignments {
		if a.ResourceUID == unassignedResourceUID {
			continue
		}
		name, ok := resources[a.ResourceUID]
		if !ok || name == "" {
			continue
		}
		assigned[a.TaskUID] = append(assigned[a.TaskUID], name)
	}

	names := make(map[int]string, len(schema.Tasks))
	for _, t := range schema.Tasks {
		names[t.UID] = t.Name
	}

	project := &Project{Name: schema.DisplayName()}
	for _, t := range schema.Tasks {
		if !reportable(t) {
			continue
		}

		start, err := parseDate(t.Start)
		if err != nil {
			return nil, fmt.Errorf("task %d start: %w", t.UID, err)
		}
		finish, err := parseDate(t.Finish)
		if err != nil {
			return nil, fmt.Errorf("task %d finish: %w", t.UID, err)
		}

		rec := domain.TaskRecord{
			UniqueID:        t.UID,
			ID:              t.ID,
			Name:            t.Name,
			OutlineLevel:    t.OutlineLevel,
			OutlineNumber:   t.OutlineNumber,
			WBS:             t.WBS,
			IsSummary:       t.Summary,
			Milestone:       t.Milestone,
			Critical:        t.Critical,
			Priority:        t.Priority,
			Start:           start,
			Finish:          finish,
			Deadline:        parseOptionalDate(t.Deadline),
			ActualStart:     parseOptionalDate(t.ActualStart),
			ActualFinish:    parseOptionalDate(t.ActualFinish),
			Duration:        FormatDuration(t.Duration),
			PercentComplete: t.PercentComplete,
			Notes:           t.Notes,
			Resources:       assigned[t.UID],
		}

		for _, b := range t.Baselines {
			if b.Number == 0 {
				rec.BaselineStart = parseOptionalDate(b.Start)
				rec.BaselineFinish = parseOptionalDate(b.Finish)
			}
		}

		for _, p := range t.Predecessors {
			// A task may list itself; those links carry no information.
			if p.PredecessorUID == t.UID {
				continue
			}
			rec.Predecessors = append(rec.Predecessors, strconv.Itoa(p.PredecessorUID)+"-"+names[p.PredecessorUID])
		}

		project.Tasks = append(project.Tasks, rec)
	}

	return project, nil
}

func parseOptionalDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := parseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
