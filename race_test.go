// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package rseqpool_test

// raceEnabled is true when the race detector is active. The concurrent
// Malloc/Free tests run with a smaller goroutine fan-out and iteration
// count in this mode to keep the detector's shadow-memory overhead from
// dominating wall time.
const raceEnabled = true
