// Copyright (c) 2021 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package progresslog

import (
	"io"
	"reflect"
	"testing"
	"time"

	"github.com/decred/slog"
)

var (
	backendLog = slog.NewBackend(io.Discard)
	testLog    = backendLog.Logger("TEST")
)

// TestLogProgress ensures the logging functionality works as expected via a
// test logger.
func TestLogProgress(t *testing.T) {
	tests := []struct {
		name          string
		reset         bool
		done          int
		total         int
		forceLog      bool
		lastLogTime   time.Time
		wantCompleted uint64
	}{{
		name:          "round 1, vector 1, last log time < 10 secs ago, not forced",
		done:          1,
		total:         400,
		forceLog:      false,
		lastLogTime:   time.Now(),
		wantCompleted: 1,
	}, {
		name:          "round 1, vector 2, last log time < 10 secs ago, not forced",
		done:          2,
		total:         400,
		forceLog:      false,
		lastLogTime:   time.Now(),
		wantCompleted: 2,
	}, {
		name:          "round 1, vector 3, last log time < 10 secs ago, forced",
		done:          3,
		total:         400,
		forceLog:      true,
		lastLogTime:   time.Now(),
		wantCompleted: 0,
	}, {
		name:          "round 2, vector 1, last log time < 10 secs ago, not forced",
		reset:         true,
		done:          1,
		total:         400,
		forceLog:      false,
		lastLogTime:   time.Now(),
		wantCompleted: 1,
	}, {
		name:          "round 2, vector 2, last log time > 10 secs ago, not forced",
		done:          2,
		total:         400,
		forceLog:      false,
		lastLogTime:   time.Now().Add(-11 * time.Second),
		wantCompleted: 0,
	}, {
		name:          "round 2, vector 3, last log time > 10 secs ago, forced",
		done:          3,
		total:         400,
		forceLog:      true,
		lastLogTime:   time.Now().Add(-11 * time.Second),
		wantCompleted: 0,
	}}

	progressLogger := New("Verified", testLog)
	for _, test := range tests {
		if test.reset {
			progressLogger = New("Verified", testLog)
		}
		progressLogger.SetLastLogTime(test.lastLogTime)
		progressLogger.LogProgress(test.done, test.total, test.forceLog)
		wantProgressLogger := &Logger{
			completed:       test.wantCompleted,
			lastLogTime:     progressLogger.lastLogTime,
			progressAction:  progressLogger.progressAction,
			subsystemLogger: progressLogger.subsystemLogger,
		}
		if !reflect.DeepEqual(progressLogger, wantProgressLogger) {
			t.Errorf("%s:\nwant: %+v\ngot: %+v\n", test.name,
				wantProgressLogger, progressLogger)
		}
	}
}
