// Copyright (c) 2015-2021 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"sync"
	"time"

	"github.com/decred/slog"
)

// pickNoun returns the singular or plural form of a noun depending on the
// provided count.
func pickNoun(n uint64, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// Logger provides periodic logging of progress towards some action such as
// running a conformance suite.
type Logger struct {
	sync.Mutex
	subsystemLogger slog.Logger
	progressAction  string

	// lastLogTime tracks the last time a log statement was shown.
	lastLogTime time.Time

	// completed accumulates the number of vectors finished between log
	// statements.
	completed uint64
}

// New returns a new progress logger for a vector-oriented action.
func New(progressAction string, logger slog.Logger) *Logger {
	return &Logger{
		lastLogTime:     time.Now(),
		progressAction:  progressAction,
		subsystemLogger: logger,
	}
}

// LogProgress accumulates the completion of one vector and periodically
// (every 10 seconds) logs an information message to show progress to the
// user along with duration and totals included.
//
// The force flag may be used to force a log message to be shown regardless of
// the time the last one was shown.
//
// The progress message is templated as follows:
//
//	{progressAction} {numProcessed} {vectors|vector} in the last {timePeriod}
//	({done} of {total}, {percentage} complete)
func (l *Logger) LogProgress(done, total int, forceLog bool) {
	l.Lock()
	defer l.Unlock()

	l.completed++
	now := time.Now()
	duration := now.Sub(l.lastLogTime)
	if !forceLog && duration < time.Second*10 {
		return
	}

	// Log information about suite progress.
	var percentage float64
	if total > 0 {
		percentage = 100 * float64(done) / float64(total)
	}
	l.subsystemLogger.Infof("%s %d %s in the last %0.2fs (%d of %d, %0.2f%% "+
		"complete)", l.progressAction, l.completed,
		pickNoun(l.completed, "vector", "vectors"), duration.Seconds(), done,
		total, percentage)

	l.completed = 0
	l.lastLogTime = now
}

// SetLastLogTime updates the last time data was logged to the provided time.
func (l *Logger) SetLastLogTime(time time.Time) {
	l.Lock()
	l.lastLogTime = time
	l.Unlock()
}
