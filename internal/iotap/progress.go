package iotap

import (
	"io"
	"log/slog"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/tapadyen/pkg/locator"
	"github.com/gnames/tapadyen/pkg/tap"
)

const barTemplate = `{{string . "stream"}} {{string . "report"}} ` +
	`{{counters . }} records {{speed . "%s rec/s" ""}} {{etime . }}`

type progress struct {
	w   io.Writer
	bar *pb.ProgressBar
}

func newProgress(w io.Writer) *progress {
	return &progress{w: w}
}

func (p *progress) phase(streamID string, ph tap.Phase) {
	slog.Debug("Stream phase", "stream", streamID, "phase", ph.String())
	switch ph {
	case tap.ResolvingState:
		if p.w == nil {
			return
		}
		p.finish()
		p.bar = pb.ProgressBarTemplate(barTemplate).New(0)
		p.bar.SetWriter(p.w)
		p.bar.Set(pb.CleanOnFinish, true)
		p.bar.Set("stream", streamID)
		p.bar.Start()
	case tap.Done:
		p.finish()
	}
}

func (p *progress) locator(streamID, loc string) {
	slog.Info("Syncing report", "stream", streamID, "locator", loc)
	if p.bar == nil {
		return
	}
	if d, err := locator.ExtractDate(loc); err == nil {
		p.bar.Set("report", d.ISO())
	}
}

func (p *progress) record(string) {
	if p.bar != nil {
		p.bar.Increment()
	}
}

func (p *progress) finish() {
	if p.bar != nil {
		p.bar.Finish()
		p.bar = nil
	}
}
