// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"os"
	"syscall"
)

func fileSignature(info os.FileInfo) (changedNs int64, device, inode uint64) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, 0, 0
	}
	return stat.Ctimespec.Sec*1e9 + stat.Ctimespec.Nsec, uint64(stat.Dev), stat.Ino
}
