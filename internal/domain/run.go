package domain

import (
	"time"

	"github.com/google/uuid"
)

// DatasetRun records the parameters of one dataset build.
type DatasetRun struct {
	ID            uuid.UUID
	Version       string
	LexiconFormat string
	LexiconPath   string
	SplitSeed     int64
	BuildSeed     int64
	TrainCut      float64
	DevCut        float64
	CreatedAt     time.Time
}
