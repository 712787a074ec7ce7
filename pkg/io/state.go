package io

import (
	"time"

	"github.com/matzehuels/dutyflow/pkg/buildinfo"
	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/ingest"
	"github.com/matzehuels/dutyflow/pkg/roster"
	"github.com/matzehuels/dutyflow/pkg/solver"
)

// SaveState is a complete, reloadable session.
type SaveState struct {
	AnalysisDate    roster.Date             `json:"analysis_date"`
	People          []roster.Person         `json:"people"`
	Teams           []roster.Team           `json:"teams"`
	QualDefs        ingest.QualTable        `json:"qual_defs"`
	Locks           []roster.AssignmentLock `json:"persistent_locks"`
	ExportTimestamp time.Time               `json:"export_timestamp"`
	Version         string                  `json:"version"`
}

// NewSaveState captures in and the qualification table, stamped with the
// current time and build version.
func NewSaveState(in solver.Input, quals ingest.QualTable) *SaveState {
	return &SaveState{
		AnalysisDate:    in.AnalysisDate,
		People:          in.People,
		Teams:           in.Teams,
		QualDefs:        quals,
		Locks:           in.Locks,
		ExportTimestamp: time.Now().UTC().Truncate(time.Second),
		Version:         buildinfo.Version,
	}
}

// Input returns the solver input the state describes.
func (s *SaveState) Input() solver.Input {
	return solver.Input{
		People:       s.People,
		Teams:        s.Teams,
		Locks:        s.Locks,
		AnalysisDate: s.AnalysisDate,
	}
}

// Validate checks the state's version and internal references.
func (s *SaveState) Validate() error {
	if !buildinfo.Compatible(s.Version) {
		return errors.New(errors.ErrCodeVersionMismatch,
			"save state created with version %s but current version is %s", s.Version, buildinfo.Version)
	}
	if len(s.People) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "save state has no people")
	}
	if len(s.Teams) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "save state has no teams")
	}

	people := make(map[string]bool, len(s.People))
	for _, p := range s.People {
		people[p.Name] = true
	}
	teams := make(map[string]roster.Team, len(s.Teams))
	for _, t := range s.Teams {
		teams[t.Name] = t
	}
	for _, l := range s.Locks {
		if !people[l.PersonName] {
			return errors.New(errors.ErrCodeInvalidLock, "lock references unknown person %q", l.PersonName)
		}
		if l.TeamName == "" {
			continue
		}
		t, ok := teams[l.TeamName]
		if !ok {
			return errors.New(errors.ErrCodeInvalidLock, "lock references unknown team %q", l.TeamName)
		}
		if l.Position != nil && !t.Has(*l.Position) {
			return errors.New(errors.ErrCodeInvalidLock,
				"lock references position %s which team %q does not have", l.Position, l.TeamName)
		}
	}
	return nil
}
