package tacmap

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gookit/color"
	"golang.org/x/term"
)

// debugStats holds per-frame timing and recompute metrics.
// Only populated when Session.debug is true.
type debugStats struct {
	buildTime          time.Duration
	submitTime         time.Duration
	commandCount       int
	recomputeCount     int
	recomputedEntities int
}

var (
	logOut     io.Writer = os.Stderr
	logPrefix            = "[tacmap]"
	warnPrefix           = "[tacmap] warning:"
)

func init() {
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logPrefix = color.Style{color.FgCyan, color.OpBold}.Sprint(logPrefix)
		warnPrefix = color.Style{color.FgYellow, color.OpBold}.Sprint(warnPrefix)
	}
}

// logf writes a prefixed line to stderr.
func logf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOut, "%s %s\n", logPrefix, fmt.Sprintf(format, args...))
}

// warnf writes a prefixed warning line to stderr.
func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(logOut, "%s %s\n", warnPrefix, fmt.Sprintf(format, args...))
}

// debugLog prints timing and recompute stats to stderr.
func (s *Session) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	logf("build: %v | submit: %v | total: %v",
		stats.buildTime, stats.submitTime, stats.buildTime+stats.submitTime)
	logf("commands: %d | recomputes: %d | entities recomputed: %d",
		stats.commandCount, stats.recomputeCount, stats.recomputedEntities)
	if n := len(s.tokens) + len(s.zones); stats.recomputedEntities > 0 && stats.recomputeCount > 2*n {
		warnf("%d recomputes for %d entities since last frame", stats.recomputeCount, n)
	}
}

// debugCheckRemoved panics with a descriptive message when a removed entity
// is moved. Release builds ignore it.
func debugCheckRemoved(removed bool, op, name string) {
	if removed && globalDebug {
		panic(fmt.Sprintf("tacmap debug: %s on removed entity %q", op, name))
	}
}
