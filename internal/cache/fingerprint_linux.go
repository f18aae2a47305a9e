// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"os"
	"syscall"
)

// fileSignature extracts change-time, device, and inode from the stat
// result so in-place edits that preserve size and mtime still invalidate.
func fileSignature(info os.FileInfo) (changedNs int64, device, inode uint64) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, 0
	}
	return stat.Ctim.Sec*1e9 + stat.Ctim.Nsec, stat.Dev, stat.Ino
}
