// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"fmt"
	"os"
)

// Fingerprint captures the identity of an alias document at a point in
// time: its path, size, and modification time, plus change-time, device,
// and inode where the platform exposes them. Two fingerprints are equal
// iff every captured field matches exactly, which makes staleness a plain
// struct comparison.
type Fingerprint struct {
	SourcePath string `json:"source_path"`
	Size       int64  `json:"size"`
	ModifiedNs int64  `json:"modified_ns"`
	ChangedNs  int64  `json:"changed_ns"`
	Device     uint64 `json:"device"`
	Inode      uint64 `json:"inode"`
}

// CurrentFingerprint stats the document at path and captures its
// fingerprint. Platforms without change-time/device/inode metadata record
// zeroes for those fields, which still compare consistently.
func CurrentFingerprint(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("failed to stat alias document %s: %w", path, err)
	}

	fp := Fingerprint{
		SourcePath: path,
		Size:       info.Size(),
		ModifiedNs: info.ModTime().UnixNano(),
	}
	fp.ChangedNs, fp.Device, fp.Inode = fileSignature(info)
	return fp, nil
}
