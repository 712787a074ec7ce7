package ingest

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dutyflow/pkg/errors"
	"github.com/matzehuels/dutyflow/pkg/roster"
)

// Sources names the input files of a load. Requirements is always needed.
// People come from Roster when it is set, and otherwise from ASM with
// QualDefs, plus FLTMPS when present.
type Sources struct {
	Requirements string
	QualDefs     string
	ASM          string
	FLTMPS       string
	Roster       string
}

// Validate checks that the sources describe a complete load.
func (s Sources) Validate() error {
	if s.Requirements == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a requirements file is required")
	}
	if s.Roster != "" {
		return nil
	}
	if s.ASM == "" || s.QualDefs == "" {
		return errors.New(errors.ErrCodeInvalidInput, "either a roster or both ASM and qualification definitions are required")
	}
	return nil
}

// Dataset is the result of a load.
type Dataset struct {
	People   []roster.Person
	Teams    []roster.Team
	QualDefs QualTable
}

// Load reads every source concurrently and assembles the dataset.
func Load(ctx context.Context, src Sources, logger *log.Logger) (*Dataset, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var (
		teams  []roster.Team
		table  QualTable
		people []roster.Person
		prds   PRDList
	)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return readFile(ctx, src.Requirements, func(r io.Reader) (err error) {
			teams, err = ParseRequirements(r)
			return err
		})
	})
	if src.Roster != "" {
		g.Go(func() error {
			return readFile(ctx, src.Roster, func(r io.Reader) (err error) {
				people, err = ParseRoster(r, logger)
				return err
			})
		})
	} else {
		g.Go(func() error {
			return readFile(ctx, src.QualDefs, func(r io.Reader) (err error) {
				table, err = ParseQualDefs(r)
				return err
			})
		})
		g.Go(func() error {
			return readFile(ctx, src.ASM, func(r io.Reader) (err error) {
				people, err = ParseASM(r)
				return err
			})
		})
		if src.FLTMPS != "" {
			g.Go(func() error {
				return readFile(ctx, src.FLTMPS, func(r io.Reader) (err error) {
					prds, err = ParseFLTMPS(r, logger)
					return err
				})
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if src.Roster == "" {
		people = BuildPeople(ApplyPRDs(people, prds), table)
		logger.Debug("roster assembled", "people", len(people), "prds", len(prds), "qual_defs", len(table))
	}
	logger.Debug("requirements loaded", "teams", len(teams))
	return &Dataset{People: people, Teams: teams, QualDefs: table}, nil
}

func readFile(ctx context.Context, path string, parse func(io.Reader) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	if err := parse(f); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
