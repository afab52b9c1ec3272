// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && arm64

package numa

// sysMovePages is __NR_move_pages on linux/arm64.
const sysMovePages = 239

const movePagesSupported = true
