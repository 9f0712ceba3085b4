package domain

// WIPStatus tags a task with how it relates to a reporting window.
type WIPStatus string

const (
	WIPNone              WIPStatus = ""
	WIPSpanning          WIPStatus = "WIP"
	WIPStarting          WIPStatus = "Starting in Period"
	WIPFinishing         WIPStatus = "Finishing in Period"
	WIPStartingFinishing WIPStatus = "Starting & Finishing in Period"
)

// ReportMode selects how tasks are grouped into worksheets.
type ReportMode string

const (
	ModeFinishing ReportMode = "finishing"
	ModeWIP       ReportMode = "wip"
	ModeFlat      ReportMode = "tasks"
)

// ValidReportModes is the canonical set of accepted report mode strings.
var ValidReportModes = map[string]bool{
	"finishing": true, "wip": true, "tasks": true,
}

// OverdueLabel names the bucket holding tasks finishing on or before the due date.
const OverdueLabel = "Overdue"
