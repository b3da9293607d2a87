package memory

import (
	_ "embed"
	"fmt"

	"go.yaml.in/yaml/v3"

	"github.com/Eusouovitao/Rotina-Sankhya/internal/model"
)

//go:embed seed.yaml
var seedFile []byte

type seedRoutine struct {
	Name           string         `yaml:"name"`
	Description    string         `yaml:"description"`
	FrequencyType  model.TimeUnit `yaml:"frequencyType"`
	FrequencyValue int            `yaml:"frequencyValue"`
	StartTime      string         `yaml:"startTime"`
	Duration       int            `yaml:"duration"`
	DurationUnit   model.TimeUnit `yaml:"durationUnit"`
	IsActive       bool           `yaml:"isActive"`
}

// SeedRoutines returns the illustrative routines shipped with the in-memory store.
func SeedRoutines() ([]model.Routine, error) {
	var doc struct {
		Routines []seedRoutine `yaml:"routines"`
	}
	if err := yaml.Unmarshal(seedFile, &doc); err != nil {
		return nil, fmt.Errorf("parse seed routines: %w", err)
	}
	out := make([]model.Routine, 0, len(doc.Routines))
	for _, s := range doc.Routines {
		r := model.Routine{
			Name:           s.Name,
			FrequencyType:  s.FrequencyType,
			FrequencyValue: s.FrequencyValue,
			StartTime:      s.StartTime,
			Duration:       s.Duration,
			DurationUnit:   s.DurationUnit,
			IsActive:       s.IsActive,
		}
		if s.Description != "" {
			d := s.Description
			r.Description = &d
		}
		out = append(out, r)
	}
	return out, nil
}
