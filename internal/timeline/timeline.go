// Package timeline positions routines on a 24-hour axis. Every function is pure:
// the same input always yields the same output.
package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
)

const (
	MinutesPerDay = 24 * 60
	SecondsPerDay = 24 * 3600

	// MinWidthPercent keeps very short routines visible on the axis.
	MinWidthPercent = 1.0
	// DisplayMinWidthPercent is the wider floor applied when drawing a bar.
	DisplayMinWidthPercent = 2.0
)

// ParseStartTime splits an HH:MM start time into hours and minutes.
func ParseStartTime(s string) (hours, minutes int, err error) {
	if !model.StartTimeRx.MatchString(s) {
		return 0, 0, fmt.Errorf("invalid start time %q", s)
	}
	h, m, _ := strings.Cut(s, ":")
	hours, _ = strconv.Atoi(h)
	minutes, _ = strconv.Atoi(m)
	return hours, minutes, nil
}

// Left is the bar offset in percent of the day: (h*60+m)/1440*100.
func Left(startTime string) (float64, error) {
	h, m, err := ParseStartTime(startTime)
	if err != nil {
		return 0, err
	}
	return float64(h*60+m) / MinutesPerDay * 100, nil
}

// DurationMinutes normalises a duration to minutes.
func DurationMinutes(duration int, unit model.TimeUnit) float64 {
	switch unit {
	case model.UnitSecond:
		return float64(duration) / 60
	case model.UnitHour:
		return float64(duration) * 60
	}
	return float64(duration)
}

// Width is the bar width in percent of the day, never below MinWidthPercent.
func Width(duration int, unit model.TimeUnit) float64 {
	w := DurationMinutes(duration, unit) / MinutesPerDay * 100
	if w < MinWidthPercent {
		return MinWidthPercent
	}
	return w
}

// NowMarker is the position of t's wall-clock time in percent of the day.
func NowMarker(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*3600+m*60+s) / SecondsPerDay * 100
}

var unitSuffix = map[model.TimeUnit]string{
	model.UnitSecond: "s",
	model.UnitMinute: "min",
	model.UnitHour:   "H",
}

// FrequencyLabel renders "every N units" compactly, e.g. "5min" or "30s".
func FrequencyLabel(value int, unit model.TimeUnit) string {
	return strconv.Itoa(value) + unitSuffix[unit]
}

// Bar is one routine placed on the axis.
type Bar struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	IsActive       bool           `json:"isActive"`
	FrequencyType  model.TimeUnit `json:"frequencyType"`
	FrequencyLabel string         `json:"frequencyLabel"`
	StartTime      string         `json:"startTime"`
	Left           float64        `json:"left"`
	Width          float64        `json:"width"`
	DisplayWidth   float64        `json:"displayWidth"`
}

// Chart is the full timeline for a routine set at a given instant.
type Chart struct {
	Hours       []string        `json:"hours"`
	Bars        []Bar           `json:"bars"`
	Now         float64         `json:"now"`
	GeneratedAt strfmt.DateTime `json:"generatedAt"`
}

// HourLabels returns "00:00" … "23:00".
func HourLabels() []string {
	out := make([]string, 24)
	for h := range out {
		out[h] = fmt.Sprintf("%02d:00", h)
	}
	return out
}

// NewBar places a single routine. It fails only on a malformed start time.
func NewBar(r model.Routine) (Bar, error) {
	left, err := Left(r.StartTime)
	if err != nil {
		return Bar{}, err
	}
	width := Width(r.Duration, r.DurationUnit)
	display := width
	if display < DisplayMinWidthPercent {
		display = DisplayMinWidthPercent
	}
	return Bar{
		ID:             r.ID,
		Name:           r.Name,
		IsActive:       r.IsActive,
		FrequencyType:  r.FrequencyType,
		FrequencyLabel: FrequencyLabel(r.FrequencyValue, r.FrequencyType),
		StartTime:      r.StartTime,
		Left:           left,
		Width:          width,
		DisplayWidth:   display,
	}, nil
}

// Layout places every routine in input order. Routines with a malformed start
// time cannot be positioned and are left out.
func Layout(rs []model.Routine, now time.Time) Chart {
	bars := make([]Bar, 0, len(rs))
	for _, r := range rs {
		b, err := NewBar(r)
		if err != nil {
			continue
		}
		bars = append(bars, b)
	}
	return Chart{
		Hours:       HourLabels(),
		Bars:        bars,
		Now:         NowMarker(now),
		GeneratedAt: strfmt.DateTime(now),
	}
}
