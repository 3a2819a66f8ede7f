package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/docker/go-units"
	"github.com/mattn/go-isatty"

	"javaboot/downloader/core"
)

// progressBar renders download progress on a single terminal line.
type progressBar struct {
	bar         progress.Model
	out         io.Writer
	total       int64
	received    int64
	lastPercent int
}

func newProgressBar(out io.Writer) *progressBar {
	return &progressBar{
		bar:         progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		out:         out,
		lastPercent: -1,
	}
}

// progressSink returns a sink drawing on stderr, or nil when stderr is not a
// terminal or results are printed as JSON.
func progressSink() (core.ProgressSink, func()) {
	fd := os.Stderr.Fd()
	if jsonOutput || jsonLogs || !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)) {
		return nil, func() {}
	}
	p := newProgressBar(os.Stderr)
	return p.Handle, p.Finish
}

// Handle consumes one download event.
func (p *progressBar) Handle(ev core.ProgressEvent) {
	switch e := ev.(type) {
	case core.Started:
		// a retried download starts over
		p.total, p.received, p.lastPercent = e.Total, 0, -1
	case core.Chunk:
		p.received += int64(e.Size)
	}
	p.render()
}

func (p *progressBar) render() {
	percent := 0.0
	if p.total > 0 {
		percent = float64(p.received) / float64(p.total)
	}
	if percent > 1 {
		percent = 1
	}

	whole := int(percent * 100)
	if whole == p.lastPercent {
		return
	}
	p.lastPercent = whole

	fmt.Fprintf(p.out, "\r%s %s / %s", p.bar.ViewAs(percent), units.BytesSize(float64(p.received)), units.BytesSize(float64(p.total)))
}

// Finish ends the progress line. Later calls do nothing.
func (p *progressBar) Finish() {
	if p.lastPercent >= 0 {
		fmt.Fprintln(p.out)
		p.lastPercent = -1
	}
}
