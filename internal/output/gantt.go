package output

import (
	"math"
	"strings"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/timeline"
)

const (
	labelWidth   = 22
	minTrack     = 24
	trackEmpty   = '·'
	trackActive  = '█'
	trackPaused  = '░'
	trackNowMark = '│'
)

// trackWidth is the number of columns available for the 24h axis.
func (p *Printer) trackWidth() int {
	w := p.width - labelWidth - 1
	if w < minTrack {
		return minTrack
	}
	return w
}

// trackColumn maps a percentage of the day onto a track column.
func trackColumn(percent float64, cols int) int {
	c := int(math.Floor(percent/100*float64(cols) + 1e-9))
	if c < 0 {
		return 0
	}
	if c >= cols {
		return cols - 1
	}
	return c
}

// axis labels the hours that fit without overlapping.
func axis(cols int) string {
	line := []rune(strings.Repeat(" ", cols))
	next := 0
	for h, label := range timeline.HourLabels() {
		pos := h * cols / 24
		short := []rune(label[:2])
		if pos < next || pos+len(short) > cols {
			continue
		}
		copy(line[pos:], short)
		next = pos + len(short) + 1
	}
	return string(line)
}

// barTrack draws one bar. Bars running past midnight are clipped at the end of the axis.
func barTrack(b timeline.Bar, cols, now int) []rune {
	track := []rune(strings.Repeat(string(trackEmpty), cols))
	start := trackColumn(b.Left, cols)
	length := int(math.Round(b.DisplayWidth / 100 * float64(cols)))
	if length < 1 {
		length = 1
	}
	fill := trackActive
	if !b.IsActive {
		fill = trackPaused
	}
	for i := start; i < start+length && i < cols; i++ {
		track[i] = fill
	}
	if track[now] == trackEmpty {
		track[now] = trackNowMark
	}
	return track
}

// Timeline prints the chart as a Gantt-style view with a marker at the current time.
func (p *Printer) Timeline(c timeline.Chart) {
	cols := p.trackWidth()
	now := trackColumn(c.Now, cols)

	p.Println(p.style(styleHeader, cell("", labelWidth)) + " " + p.style(styleHeader, axis(cols)))
	if len(c.Bars) == 0 {
		p.Println(p.style(styleInactive, "no routines"))
		return
	}
	for _, b := range c.Bars {
		label := cell(b.Name+" "+b.FrequencyLabel, labelWidth)
		track := barTrack(b, cols, now)

		var sb strings.Builder
		for i, r := range track {
			switch {
			case r == trackNowMark && i == now:
				sb.WriteString(p.style(styleNow, string(r)))
			case r == trackActive:
				sb.WriteString(p.style(styleActive, string(r)))
			case r == trackPaused:
				sb.WriteString(p.style(styleInactive, string(r)))
			default:
				sb.WriteRune(r)
			}
		}
		p.Println(label + " " + sb.String())
	}
	p.Printf("%s now %s\n", cell("", labelWidth), p.style(styleNow, c.GeneratedAt.String()))
}
