// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && amd64

package numa

// sysMovePages is __NR_move_pages on linux/amd64.
const sysMovePages = 279

const movePagesSupported = true
