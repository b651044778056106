// Copyright (c) 2020 The Decred developers
// Copyright (c) 2025-2026 The sigfixer developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

/*
Package progresslog provides periodic logging for conformance vector
processing.

Tests are included to ensure proper functionality.

## Feature Overview

- Maintains a cumulative total of vectors completed between each logging
  interval
- Logs the cumulative data every 10 seconds along with overall completion
- Immediately logs any outstanding data when a log is forced, such as when a
  suite finishes
*/
package progresslog
