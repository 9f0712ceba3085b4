package importer

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrInvalidSource marks a file that is missing, unreadable, or not a
// project document.
var ErrInvalidSource = errors.New("not a project file or file does not exist")

// ProjectSchema is the project interchange document. The XML tags follow the
// Microsoft Project XML (MSPDI) export; the JSON tags describe the flat JSON
// export accepted for hand-written or scripted sources.
type ProjectSchema struct {
	XMLName     xml.Name           `xml:"Project" json:"-"`
	Name        string             `xml:"Name" json:"name"`
	Title       string             `xml:"Title" json:"title,omitempty"`
	Tasks       []TaskImport       `xml:"Tasks>Task" json:"tasks"`
	Resources   []ResourceImport   `xml:"Resources>Resource" json:"resources,omitempty"`
	Assignments []AssignmentImport `xml:"Assignments>Assignment" json:"assignments,omitempty"`
}

// TaskImport is one task row in document order.
type TaskImport struct {
	UID             int    `xml:"UID" json:"uid"`
	ID              int    `xml:"ID" json:"id"`
	Name            string `xml:"Name" json:"name"`
	IsNull          bool   `xml:"IsNull" json:"is_null,omitempty"`
	OutlineLevel    int    `xml:"OutlineLevel" json:"outline_level"`
	OutlineNumber   string `xml:"OutlineNumber" json:"outline_number,omitempty"`
	WBS             string `xml:"WBS" json:"wbs,omitempty"`
	Summary         bool   `xml:"Summary" json:"summary"`
	Milestone       bool   `xml:"Milestone" json:"milestone,omitempty"`
	Critical        bool   `xml:"Critical" json:"critical,omitempty"`
	Priority        int    `xml:"Priority" json:"priority,omitempty"`
	Start           string `xml:"Start" json:"start"`
	Finish          string `xml:"Finish" json:"finish"`
	Duration        string `xml:"Duration" json:"duration,omitempty"`
	Deadline        string `xml:"Deadline" json:"deadline,omitempty"`
	ActualStart     string `xml:"ActualStart" json:"actual_start,omitempty"`
	ActualFinish    string `xml:"ActualFinish" json:"actual_finish,omitempty"`
	PercentComplete int    `xml:"PercentComplete" json:"percent_complete"`
	Notes           string `xml:"Notes" json:"notes,omitempty"`

	Predecessors []PredecessorImport `xml:"PredecessorLink" json:"predecessors,omitempty"`
	Baselines    []BaselineImport    `xml:"Baseline" json:"baselines,omitempty"`
}

// PredecessorImport links a task to one of its predecessors.
type PredecessorImport struct {
	PredecessorUID int `xml:"PredecessorUID" json:"predecessor_uid"`
	Type           int `xml:"Type" json:"type,omitempty"`
}

// BaselineImport holds a saved baseline; number 0 is the primary baseline.
type BaselineImport struct {
	Number int    `xml:"Number" json:"number"`
	Start  string `xml:"Start" json:"start,omitempty"`
	Finish string `xml:"Finish" json:"finish,omitempty"`
}

// ResourceImport is a named resource.
type ResourceImport struct {
	UID  int    `xml:"UID" json:"uid"`
	Name string `xml:"Name" json:"name"`
}

// AssignmentImport assigns a resource to a task.
type AssignmentImport struct {
	UID         int `xml:"UID" json:"uid,omitempty"`
	TaskUID     int `xml:"TaskUID" json:"task_uid"`
	ResourceUID int `xml:"ResourceUID" json:"resource_uid"`
}

// DisplayName prefers the project title over the file-level name.
func (p *ProjectSchema) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.Name
}

// LoadProjectSchema reads a project export, choosing the decoder by file
// extension (.xml or .json).
func LoadProjectSchema(path string) (*ProjectSchema, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSource, path)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", ErrInvalidSource, path)
	}

	var decode func(io.Reader) (*ProjectSchema, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		decode = DecodeXML
	case ".json":
		decode = DecodeJSON
	default:
		return nil, fmt.Errorf("%w: %s (expected .xml or .json export)", ErrInvalidSource, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSource, err)
	}
	defer f.Close()

	return decode(f)
}

// DecodeXML parses a Microsoft Project XML document.
func DecodeXML(r io.Reader) (*ProjectSchema, error) {
	var schema ProjectSchema
	if err := xml.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("%w: parsing project xml: %v", ErrInvalidSource, err)
	}
	return &schema, nil
}

// DecodeJSON parses the JSON project export.
func DecodeJSON(r io.Reader) (*ProjectSchema, error) {
	var schema ProjectSchema
	if err := json.NewDecoder(r).Decode(&schema); err != nil {
		return nil, fmt.Errorf("%w: parsing project json: %v", ErrInvalidSource, err)
	}
	if schema.Tasks == nil {
		return nil, fmt.Errorf("%w: project json has no \"tasks\" array", ErrInvalidSource)
	}
	return &schema, nil
}
