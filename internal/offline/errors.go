package offline

import (
	"fmt"

	"github.com/dmitrijs2005/agrilink/internal/common"
)

// CacheInstallError reports the asset that made an install fail.
type CacheInstallError struct {
	Version CacheVersion
	Asset   string
	Err     error
}

func (e *CacheInstallError) Error() string {
	return fmt.Sprintf("%s: %s: asset %s: %v", common.ErrCacheInstall, e.Version, e.Asset, e.Err)
}

// Unwrap exposes both the sentinel and the cause to errors.Is.
func (e *CacheInstallError) Unwrap() []error {
	return []error{common.ErrCacheInstall, e.Err}
}
