package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/dutyflow/pkg/errors"
)

// ReadState decodes and validates a save state from r.
func ReadState(r io.Reader) (*SaveState, error) {
	var s SaveState
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "failed to import save state")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportState reads a save state from path.
func ImportState(path string) (*SaveState, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "save state %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open save state %s", path)
	}
	defer f.Close()
	return ReadState(f)
}
