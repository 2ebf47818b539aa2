//
// Copyright (c) 2020-2026 Markku Rossi
//
// All rights reserved.
//

package psi

import (
	"fmt"
	"io"
	"time"

	"github.com/markkurossi/psi/p2p"
	"github.com/markkurossi/tabulate"
)

// FileSize renders byte counts in decimal units.
type FileSize uint64

func (s FileSize) String() string {
	switch {
	case s > 1000*1000*1000*1000:
		return fmt.Sprintf("%dTB", s/(1000*1000*1000*1000))
	case s > 1000*1000*1000:
		return fmt.Sprintf("%dGB", s/(1000*1000*1000))
	case s > 1000*1000:
		return fmt.Sprintf("%dMB", s/(1000*1000))
	case s > 1000:
		return fmt.Sprintf("%dkB", s/1000)
	default:
		return fmt.Sprintf("%dB", s)
	}
}

// Timing records the durations of protocol steps. A nil *Timing
// discards all samples.
type Timing struct {
	Start   time.Time
	Samples []*Sample
}

// Sample contains information about one protocol step.
type Sample struct {
	Label string
	Start time.Time
	End   time.Time
	Cols  []string
}

// NewTiming creates a new Timing instance.
func NewTiming() *Timing {
	return &Timing{
		Start: time.Now(),
	}
}

// Sample ends the current step with label and data columns. The step
// started when the previous sample ended.
func (t *Timing) Sample(label string, cols ...string) {
	if t == nil {
		return
	}
	start := t.Start
	if len(t.Samples) > 0 {
		start = t.Samples[len(t.Samples)-1].End
	}
	t.Samples = append(t.Samples, &Sample{
		Label: label,
		Start: start,
		End:   time.Now(),
		Cols:  cols,
	})
}

// Total returns the total duration of all samples.
func (t *Timing) Total() time.Duration {
	if t == nil || len(t.Samples) == 0 {
		return 0
	}
	return t.Samples[len(t.Samples)-1].End.Sub(t.Start)
}

// Print prints the timing report with the connection statistics.
func (t *Timing) Print(w io.Writer, stats p2p.IOStats) {
	if t == nil || len(t.Samples) == 0 {
		return
	}

	sent := stats.Sent.Load()
	received := stats.Recvd.Load()

	tab := tabulate.New(tabulate.UnicodeLight)
	tab.Header("Op").SetAlign(tabulate.ML)
	tab.Header("Time").SetAlign(tabulate.MR)
	tab.Header("%").SetAlign(tabulate.MR)
	tab.Header("Xfer").SetAlign(tabulate.MR)

	total := t.Total()
	for _, sample := range t.Samples {
		row := tab.Row()
		row.Column(sample.Label)

		duration := sample.End.Sub(sample.Start)
		row.Column(duration.String())
		row.Column(percent(float64(duration), float64(total)))

		for _, col := range sample.Cols {
			row.Column(col)
		}
	}

	row := tab.Row()
	row.Column("Total").SetFormat(tabulate.FmtBold)
	row.Column(total.String()).SetFormat(tabulate.FmtBold)
	row.Column("").SetFormat(tabulate.FmtBold)
	row.Column(FileSize(sent + received).String()).SetFormat(tabulate.FmtBold)

	row = tab.Row()
	row.Column("├╴Sent").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column(percent(float64(sent), float64(sent+received))).
		SetFormat(tabulate.FmtItalic)
	row.Column(FileSize(sent).String()).SetFormat(tabulate.FmtItalic)

	row = tab.Row()
	row.Column("├╴Rcvd").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column(percent(float64(received), float64(sent+received))).
		SetFormat(tabulate.FmtItalic)
	row.Column(FileSize(received).String()).SetFormat(tabulate.FmtItalic)

	row = tab.Row()
	row.Column("╰╴Flcd").SetFormat(tabulate.FmtItalic)
	row.Column("")
	row.Column("")
	row.Column(fmt.Sprintf("%v", stats.Flushed.Load())).
		SetFormat(tabulate.FmtItalic)

	tab.Print(w)
}

func percent(v, total float64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2f%%", v/total*100)
}
