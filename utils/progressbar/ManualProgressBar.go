// Package progressbar implements functionality of printing a progress
// bar to a terminal
package progressbar

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// ManualProgressBar implements progress bar functionality that must
// be manually managed. That is, the Display() function must be called
// whenever an updated progress bar should be printed.
//
// ManualProgressBar does not use concurrency.
type ManualProgressBar struct {
	out             io.Writer
	label           string
	width           float64
	maxProgress     float64
	currentProgress float64
	bar             strings.Builder
	startTime       time.Time
}

// NewManualProgressBar returns a new ManualProgressBar of the given
// width which is full after max increments and writes to out
func NewManualProgressBar(out io.Writer, width, max int) *ManualProgressBar {
	if max < 1 {
		max = 1
	}
	return &ManualProgressBar{
		out:         out,
		width:       float64(width),
		maxProgress: float64(max),
		startTime:   time.Now(),
	}
}

// SetLabel sets the text displayed in front of the bar
func (p *ManualProgressBar) SetLabel(label string) {
	p.label = label
}

// SetMax changes the number of increments after which the bar is full.
// Progress already made is kept.
func (p *ManualProgressBar) SetMax(max int) {
	if max < 1 {
		max = 1
	}
	p.maxProgress = float64(max)
	if p.currentProgress > p.maxProgress {
		p.currentProgress = p.maxProgress
	}
}

// Increment increments the internal progress counter. Each time an
// iteration is performed, Increment should be called.
func (p *ManualProgressBar) Increment() {
	if p.currentProgress < p.maxProgress {
		p.currentProgress++
	}
}

// Progress returns the fraction of the bar that is full
func (p *ManualProgressBar) Progress() float64 {
	return p.currentProgress / p.maxProgress
}

// String returns the current bar
func (p *ManualProgressBar) String() string {
	p.bar.Reset()
	if p.label != "" {
		p.bar.WriteString(p.label)
		p.bar.WriteString(" ")
	}
	p.bar.WriteString("|")

	currentProg := p.Progress() * p.width
	for i := 0.0; i < currentProg; i++ {
		p.bar.WriteString("█")
	}
	for i := currentProg; i < p.width; i++ {
		p.bar.WriteString(" ")
	}
	fmt.Fprintf(&p.bar, "| [%.2f%% | elapsed: %v]", p.Progress()*100,
		time.Since(p.startTime).Truncate(time.Second))

	return p.bar.String()
}

// Display redraws the progress bar in place
func (p *ManualProgressBar) Display() {
	fmt.Fprintf(p.out, "\n\033[1A\033[K%v", p.String())
}

// Finish fills the bar, displays it, and ends the line
func (p *ManualProgressBar) Finish() {
	p.currentProgress = p.maxProgress
	p.Display()
	fmt.Fprintln(p.out)
}
