//go:build windows

package snapshot

import (
	"fmt"

	"golang.org/x/sys/windows"
)

// checkDiskSpace checks if there's enough disk space available.
func checkDiskSpace(dir string, requiredBytes int64) error {
	path, err := windows.UTF16PtrFromString(dir)
	if err != nil {
		return fmt.Errorf("failed to check disk space: %w", err)
	}

	var available uint64
	if err := windows.GetDiskFreeSpaceEx(path, &available, nil, nil); err != nil {
		return fmt.Errorf("failed to check disk space: %w", err)
	}

	if int64(available) < requiredBytes {
		return fmt.Errorf("need %d bytes, only %d available", requiredBytes, available)
	}
	return nil
}
