//go:build windows

package cmd

import (
	// Registers the Windows UI Automation backend with the platform
	// provider.
	_ "github.com/hfwin/handsfree/internal/platform/windows"
)
