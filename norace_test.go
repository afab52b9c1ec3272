// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build !race

package rseqpool_test

// raceEnabled mirrors race_test.go's constant for builds without the race
// detector, so the concurrent tests can branch on it unconditionally.
const raceEnabled = false
