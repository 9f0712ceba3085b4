package formatter

import (
	"fmt"
	"io"
	"path/filepath"
	"sync"
	"time"
)

// Progress frames fill a small bar, one cell per tick.
var progressFrames = []string{"▱▱▱", "▰▱▱", "▰▰▱", "▰▰▰", "▱▰▰", "▱▱▰"}

const progressTick = 100 * time.Millisecond

// Progress shows which report is being built and for how long, on a single
// line that is erased when the report is done.
type Progress struct {
	w       io.Writer
	label   string
	started time.Time

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// ReportProgressLabel names a run: "finishing report for plan.xml, due 10/01/2024".
// An empty due date reads as today.
func ReportProgressLabel(mode, source, due string) string {
	if due == "" {
		due = "today"
	}
	return fmt.Sprintf("%s report for %s, due %s", mode, filepath.Base(source), due)
}

func NewProgress(w io.Writer, label string) *Progress {
	return &Progress{
		w:     w,
		label: label,
		stop:  make(chan struct{}),
		done:  make(chan struct{}),
	}
}

// Start draws the first frame and keeps redrawing until Stop.
func (p *Progress) Start() {
	p.started = time.Now()
	p.draw(0)
	go func() {
		defer close(p.done)
		ticker := time.NewTicker(progressTick)
		defer ticker.Stop()
		for i := 1; ; i++ {
			select {
			case <-p.stop:
				fmt.Fprint(p.w, "\r\033[K")
				return
			case <-ticker.C:
				p.draw(i)
			}
		}
	}()
}

func (p *Progress) draw(i int) {
	frame := progressFrames[i%len(progressFrames)]
	elapsed := time.Since(p.started).Truncate(100 * time.Millisecond)
	fmt.Fprintf(p.w, "\r  %s Building %s %s", StylePurple.Render(frame), p.label, Dim(elapsed.String()))
}

// Stop erases the line. It may be called more than once.
func (p *Progress) Stop() {
	p.once.Do(func() {
		close(p.stop)
		<-p.done
	})
}

// StartReportProgress starts a Progress line for a report run and returns
// its stop function.
func StartReportProgress(w io.Writer, mode, source, due string) func() {
	p := NewProgress(w, ReportProgressLabel(mode, source, due))
	p.Start()
	return p.Stop
}
