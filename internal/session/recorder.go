package session

import (
	"context"

	"github.com/akyairhashvil/vrtimer/internal/models"
)

// Recorder receives a record for every session that completes or is stopped.
//
//go:generate mockgen -source=recorder.go -destination=mock_recorder_test.go -package=session
type Recorder interface {
	RecordSession(ctx context.Context, rec models.SessionRecord) error
}
