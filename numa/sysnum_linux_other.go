// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build linux && !amd64 && !arm64

package numa

// sysMovePages is left at 0 on architectures this package has not been
// taught the move_pages(2) syscall number for; movePagesSupported gates
// place() down to ErrNotSupported instead of issuing a bogus syscall.
const sysMovePages = 0

const movePagesSupported = false
