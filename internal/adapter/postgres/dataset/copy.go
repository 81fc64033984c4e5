package dataset

import (
	"github.com/google/uuid"

	"github.com/heartmarshall/revdict/internal/domain"
)

// instanceSource feeds one split to pgx CopyFrom.
type instanceSource struct {
	runID     uuid.UUID
	split     string
	instances []domain.Instance
	pos       int
}

func newInstanceSource(runID uuid.UUID, split domain.Split, instances []domain.Instance) *instanceSource {
	return &instanceSource{runID: runID, split: split.String(), instances: instances, pos: -1}
}

func (s *instanceSource) Next() bool {
	s.pos++
	return s.pos < len(s.instances)
}

func (s *instanceSource) Values() ([]any, error) {
	inst := s.instances[s.pos]
	desc := inst.Description
	if desc == nil {
		// description is NOT NULL; an empty definition is stored as '{}'.
		desc = []string{}
	}
	return []any{s.runID, s.split, int32(s.pos), inst.Word, desc, inst.SynsetID, inst.SenseKey}, nil
}

func (s *instanceSource) Err() error { return nil }
