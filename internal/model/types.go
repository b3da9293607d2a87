package model

import "regexp"

// StartTimeRx is the accepted 24h HH:MM form; the hour may omit its leading zero.
var StartTimeRx = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeUnit is the unit shared by a routine's frequency and its duration.
type TimeUnit string

const (
	UnitSecond TimeUnit = "second"
	UnitMinute TimeUnit = "minute"
	UnitHour   TimeUnit = "hour"
)

// Units lists the accepted units in display order.
func Units() []TimeUnit { return []TimeUnit{UnitSecond, UnitMinute, UnitHour} }

// Valid reports whether u is one of the known units.
func (u TimeUnit) Valid() bool {
	switch u {
	case UnitSecond, UnitMinute, UnitHour:
		return true
	}
	return false
}

// Routine is a stored schedule description. Nothing executes it.
type Routine struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    *string  `json:"description,omitempty"`
	FrequencyType  TimeUnit `json:"frequencyType"`
	FrequencyValue int      `json:"frequencyValue"`
	StartTime      string   `json:"startTime"`
	Duration       int      `json:"duration"`
	DurationUnit   TimeUnit `json:"durationUnit"`
	IsActive       bool     `json:"isActive"`
}

// Clone returns a copy that shares no memory with r.
func (r Routine) Clone() Routine {
	out := r
	if r.Description != nil {
		d := *r.Description
		out.Description = &d
	}
	return out
}

// RoutineInput is a candidate routine as received from a client. A nil field
// means the client did not send it.
type RoutineInput struct {
	Name           *string   `json:"name,omitempty"`
	Description    *string   `json:"description,omitempty"`
	FrequencyType  *TimeUnit `json:"frequencyType,omitempty"`
	FrequencyValue *int      `json:"frequencyValue,omitempty"`
	StartTime      *string   `json:"startTime,omitempty"`
	Duration       *int      `json:"duration,omitempty"`
	DurationUnit   *TimeUnit `json:"durationUnit,omitempty"`
	IsActive       *bool     `json:"isActive,omitempty"`
}

// Empty reports whether no field is present.
func (in RoutineInput) Empty() bool {
	return in == RoutineInput{}
}

// ApplyTo merges the present fields onto a copy of r.
func (in RoutineInput) ApplyTo(r Routine) Routine {
	out := r.Clone()
	if in.Name != nil {
		out.Name = *in.Name
	}
	if in.Description != nil {
		d := *in.Description
		out.Description = &d
	}
	if in.FrequencyType != nil {
		out.FrequencyType = *in.FrequencyType
	}
	if in.FrequencyValue != nil {
		out.FrequencyValue = *in.FrequencyValue
	}
	if in.StartTime != nil {
		out.StartTime = *in.StartTime
	}
	if in.Duration != nil {
		out.Duration = *in.Duration
	}
	if in.DurationUnit != nil {
		out.DurationUnit = *in.DurationUnit
	}
	if in.IsActive != nil {
		out.IsActive = *in.IsActive
	}
	return out
}

// Routine builds a record from the present fields; absent fields keep their zero value.
func (in RoutineInput) Routine() Routine {
	return in.ApplyTo(Routine{})
}

// InputFrom converts a full record back into an input with every field present.
func InputFrom(r Routine) RoutineInput {
	r = r.Clone()
	return RoutineInput{
		Name:           &r.Name,
		Description:    r.Description,
		FrequencyType:  &r.FrequencyType,
		FrequencyValue: &r.FrequencyValue,
		StartTime:      &r.StartTime,
		Duration:       &r.Duration,
		DurationUnit:   &r.DurationUnit,
		IsActive:       &r.IsActive,
	}
}

// Stats are the dashboard counters over a routine set.
type Stats struct {
	Total       int              `json:"total"`
	Active      int              `json:"active"`
	ByFrequency map[TimeUnit]int `json:"byFrequency"`
}

// ComputeStats counts routines by status and frequency type.
func ComputeStats(rs []Routine) Stats {
	st := Stats{ByFrequency: make(map[TimeUnit]int, 3)}
	for _, u := range Units() {
		st.ByFrequency[u] = 0
	}
	for _, r := range rs {
		st.Total++
		if r.IsActive {
			st.Active++
		}
		st.ByFrequency[r.FrequencyType]++
	}
	return st
}
