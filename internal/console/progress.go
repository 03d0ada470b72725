package console

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/alanbriolat/video-fetcher"
	"github.com/alanbriolat/video-fetcher/generic"
)

// lineProgress redraws a fixed-width bar on the same line. Without a terminal only the last bar is written.
type lineProgress struct {
	out      io.Writer
	bar      video_fetcher.Bar
	redraw   bool
	last     string
	rendered bool
}

func newLineProgress(out io.Writer, bar video_fetcher.Bar, redraw bool) *lineProgress {
	return &lineProgress{out: out, bar: bar, redraw: redraw}
}

func (p *lineProgress) Update(done int64, total int64) {
	if total <= 0 {
		return
	}
	s := p.bar.Render(done, total)
	if s == p.last {
		return
	}
	p.last = s
	if p.redraw {
		fmt.Fprint(p.out, "\r"+s)
		p.rendered = true
	}
}

func (p *lineProgress) Finish() {
	if p.last == "" {
		return
	}
	if !p.rendered {
		fmt.Fprint(p.out, p.last)
	}
	fmt.Fprintln(p.out)
}

// bytesProgress shows transferred bytes and throughput.
type bytesProgress struct {
	bar *progressbar.ProgressBar
}

func newBytesProgress(out io.Writer) *bytesProgress {
	bar := progressbar.NewOptions64(
		-1,
		progressbar.OptionSetDescription("downloading"),
		progressbar.OptionSetWriter(out),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(video_fetcher.DefaultBarWidth),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(out, "\n")
		}),
		progressbar.OptionSpinnerType(14),
	)
	return &bytesProgress{bar: bar}
}

func (p *bytesProgress) Update(done int64, total int64) {
	if total <= 0 {
		return
	}
	if p.bar.GetMax64() != total {
		p.bar.ChangeMax64(total)
	}
	generic.Unwrap_(p.bar.Set64(done))
}

func (p *bytesProgress) Finish() {
	if p.bar.IsFinished() {
		return
	}
	_ = p.bar.Finish()
}
