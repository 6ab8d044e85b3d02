//go:build windows

package windows

import (
	"github.com/hfwin/handsfree/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		reader := NewReader()
		return &platform.Provider{
			WindowManager:   NewWindowManager(),
			TreeReader:      reader,
			PointReader:     reader,
			ActionPerformer: NewActionPerformer(reader),
			Inputter:        NewInputter(),
			Hooks:           NewHookSource(),
			Screenshotter:   NewScreenshotter(),
			Clipboard:       NewClipboard(),
		}, nil
	}
}
