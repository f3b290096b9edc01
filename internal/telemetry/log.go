package telemetry

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"mad-wfc/pkg/wfc"
)

// LogObserver writes engine lifecycle events to a slog.Logger. Every start
// event opens a new run id that is attached to the following records. Bans
// and observations are logged at debug level.
type LogObserver struct {
	logger *slog.Logger
	runID  string
	bans   int
}

// NewLogObserver returns an observer logging to logger, or to slog.Default
// when logger is nil.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

// RunID returns the id of the current run, empty before the first start.
func (l *LogObserver) RunID() string { return l.runID }

// OnEvent logs ev.
func (l *LogObserver) OnEvent(ev wfc.Event) {
	ctx := context.Background()
	switch ev.Kind {
	case wfc.EventStart:
		l.runID = uuid.NewString()
		l.bans = 0
		l.logger.InfoContext(ctx, "run started", "run", l.runID)
	case wfc.EventBan:
		l.bans++
		if l.logger.Enabled(ctx, slog.LevelDebug) {
			l.logger.DebugContext(ctx, "ban", "run", l.runID, "cell", ev.Cell, "pattern", ev.Pattern)
		}
	case wfc.EventObserve:
		l.logger.DebugContext(ctx, "observe", "run", l.runID, "cell", ev.Cell, "pattern", ev.Pattern)
	case wfc.EventFail:
		l.logger.WarnContext(ctx, "run failed", "run", l.runID, "bans", l.bans)
	case wfc.EventFinish:
		l.logger.InfoContext(ctx, "run finished", "run", l.runID, "bans", l.bans)
	}
}
