package pipeline

import (
	"context"
	"fmt"

	"github.com/knickknack27/mb3/internal/session"
)

// Stage names, also used as timing and metric keys.
const (
	StageTranscribe     = "transcribe"
	StagePivotTranslate = "translatePivot"
	StageGenerate       = "generate"
	StageReplyTranslate = "translateReply"
	StageSynthesize     = "synthesize"
)

type ReplyGenerator interface {
	Generate(ctx context.Context, history []session.Turn, userText string) (string, error)
}

// StageError tags a provider failure with the pipeline stage it happened in.
// The wrapped error stays reachable for errors.Is/As, so callers can still
// tell a transcription failure from a timeout.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("pipeline stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
