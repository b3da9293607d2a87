package output

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
	"github.com/Eusouovitao/Rotina-Sankhya/internal/timeline"
)

type column struct {
	title string
	width int
}

var routineColumns = []column{
	{"ID", 8},
	{"NAME", 26},
	{"EVERY", 7},
	{"START", 5},
	{"DURATION", 9},
	{"STATUS", 8},
}

// cell pads s to width, truncating with an ellipsis when it does not fit.
func cell(s string, width int) string {
	r := []rune(s)
	if len(r) > width {
		if width <= 1 {
			r = r[:width]
		} else {
			r = append(r[:width-1], '…')
		}
	}
	return lipgloss.NewStyle().Width(width).Render(string(r))
}

func (p *Printer) row(values []string, s *lipgloss.Style) {
	cells := make([]string, len(values))
	for i, v := range values {
		c := cell(v, routineColumns[i].width)
		if s != nil {
			c = p.style(*s, c)
		}
		cells[i] = c
	}
	p.Println(lipgloss.JoinHorizontal(lipgloss.Top, joinWith(cells, "  ")...))
}

func joinWith(cells []string, sep string) []string {
	out := make([]string, 0, len(cells)*2)
	for i, c := range cells {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, c)
	}
	return out
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func statusText(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

// Routines prints a table of routines in the given order.
func (p *Printer) Routines(rs []model.Routine) {
	if len(rs) == 0 {
		p.Println(p.style(styleInactive, "no routines"))
		return
	}
	titles := make([]string, len(routineColumns))
	for i, c := range routineColumns {
		titles[i] = c.title
	}
	p.row(titles, &styleHeader)

	for _, r := range rs {
		s := styleActive
		if !r.IsActive {
			s = styleInactive
		}
		p.row([]string{
			shortID(r.ID),
			r.Name,
			timeline.FrequencyLabel(r.FrequencyValue, r.FrequencyType),
			r.StartTime,
			strconv.Itoa(r.Duration) + " " + string(r.DurationUnit),
			statusText(r.IsActive),
		}, &s)
	}
}

// Routine prints every field of a single routine.
func (p *Printer) Routine(r model.Routine) {
	desc := ""
	if r.Description != nil {
		desc = *r.Description
	}
	fields := [][2]string{
		{"id", r.ID},
		{"name", r.Name},
		{"description", desc},
		{"frequency", fmt.Sprintf("every %d %s", r.FrequencyValue, r.FrequencyType)},
		{"start", r.StartTime},
		{"duration", fmt.Sprintf("%d %s", r.Duration, r.DurationUnit)},
		{"status", statusText(r.IsActive)},
	}
	for _, f := range fields {
		p.Printf("%s %s\n", p.style(styleHeader, cell(f[0], 12)), f[1])
	}
}

// Stats prints the dashboard counters.
func (p *Printer) Stats(st model.Stats) {
	p.Printf("%s %d\n", p.style(styleHeader, cell("total", 8)), st.Total)
	p.Printf("%s %d\n", p.style(styleHeader, cell("active", 8)), st.Active)
	for _, u := range model.Units() {
		p.Printf("%s %d\n", p.style(styleHeader, cell(string(u), 8)), st.ByFrequency[u])
	}
}
