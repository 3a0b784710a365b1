package relay

import (
	"time"

	"github.com/sznuper/alarmcord/internal/discord"
)

// Stages recorded in Result.ErrStage.
const (
	StageParse  = "parse"
	StageSecret = "secret"
	StagePost   = "post"
	StageMirror = "mirror"
)

// Result captures the outcome of relaying one alarm. Errors are stored in
// Err/ErrStage rather than returned, so the caller always has something to
// display.
type Result struct {
	AlarmName    string
	State        string
	Payload      *discord.Payload
	StatusCode   int
	Mirrored     []string          // mirror services notified (or would-notify)
	MirrorErrors map[string]string // service → error; never fatal
	DryRun       bool
	Duration     time.Duration
	Err          error
	ErrStage     string
}
