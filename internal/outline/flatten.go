// Package outline collapses a project's summary-task hierarchy into a path
// string carried by each leaf task.
package outline

import (
	"strings"

	"github.com/alexanderramin/mspreport/internal/domain"
)

// Result is the output of Flatten.
type Result struct {
	// Tasks holds the leaf records in document order with SummaryPath set.
	Tasks []domain.TaskRecord
	// Ignored lists excluded IDs that were found in the source.
	Ignored []int
	// Unmatched lists excluded IDs that never appeared in the source.
	Unmatched []int
}

type ancestor struct {
	name   string
	hidden bool
}

// Flatten walks records in document order and returns every leaf task not in
// ignore, tagged with the ">"-joined names of its open summary ancestors.
//
// Each leaf's path holds its level-1 nearest open summaries, so a leaf that
// follows a deeper branch does not inherit it.
//
// An ignored summary task still occupies its outline slot so that the depth
// of its descendants stays correct, but its name is left out of their paths.
// Ignored leaf tasks are skipped without touching the ancestor stack.
func Flatten(records []domain.TaskRecord, ignore []int) Result {
	excluded := make(map[int]bool, len(ignore))
	for _, id := range ignore {
		excluded[id] = true
	}
	found := make(map[int]bool)

	var res Result
	var stack []ancestor

	for _, r := range records {
		if excluded[r.UniqueID] {
			if !found[r.UniqueID] {
				found[r.UniqueID] = true
				res.Ignored = append(res.Ignored, r.UniqueID)
			}
			if r.IsSummary {
				stack = open(stack, r.OutlineLevel, ancestor{name: r.Name, hidden: true})
			}
			continue
		}

		if !r.IsSummary {
			// A leaf closes every summary at or below its own level; a
			// top-level leaf sits outside all of them.
			stack = trim(stack, r.OutlineLevel-1)
			leaf := r
			leaf.SummaryPath = join(stack)
			res.Tasks = append(res.Tasks, leaf)
			continue
		}

		stack = open(stack, r.OutlineLevel, ancestor{name: r.Name})
	}

	for _, id := range ignore {
		if !found[id] {
			res.Unmatched = append(res.Unmatched, id)
			found[id] = true
		}
	}
	return res
}

// open records a summary task at level. A summary deeper than the stack is
// pushed; otherwise the stack is cut back to level-1 entries first.
func open(stack []ancestor, level int, a ancestor) []ancestor {
	if level > len(stack) {
		return append(stack, a)
	}
	return append(trim(stack, level-1), a)
}

// trim cuts the stack to at most depth slots. Hidden summaries count.
func trim(stack []ancestor, depth int) []ancestor {
	if depth < 0 {
		depth = 0
	}
	if len(stack) > depth {
		return stack[:depth]
	}
	return stack
}

func join(stack []ancestor) string {
	names := make([]string, 0, len(stack))
	for _, a := range stack {
		if !a.hidden {
			names = append(names, a.name)
		}
	}
	return strings.Join(names, domain.SummaryPathSeparator)
}
