// SPDX-License-Identifier: MPL-2.0

package cache

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"github.com/gmt/chopper/pkg/aliasfile"
)

// entryExt is the cache entry file extension.
const entryExt = ".json"

// sanitizeAlias maps an alias name onto filesystem-safe characters. ASCII
// letters, digits, and `.`/`_`/`-` pass through; everything else becomes
// `_`.
func sanitizeAlias(alias string) string {
	var b strings.Builder
	b.Grow(len(alias))
	for _, r := range alias {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}

// entryFilename returns the cache filename for alias. Names that are
// already filesystem-safe map directly; anything else gets a stable hash
// suffix so distinct exotic names (including non-ASCII) cannot collide on
// their sanitized form or corrupt the cache directory layout.
func entryFilename(alias aliasfile.Alias) string {
	safe := sanitizeAlias(alias.String())
	if safe == alias.String() {
		return safe + entryExt
	}
	return fmt.Sprintf("%s-%016x%s", safe, xxh3.HashString(alias.String()), entryExt)
}

// legacyFilename returns the pre-hashing direct filename for alias. It
// differs from entryFilename only for names that need the hash suffix.
func legacyFilename(alias aliasfile.Alias) string {
	return sanitizeAlias(alias.String()) + entryExt
}
