package model

import "time"

// Snapshot is a captured element tree together with its window identity,
// suitable for writing to disk with `tree --out` and inspecting offline.
type Snapshot struct {
	Window     Window    `yaml:"window"      json:"window"`
	CapturedAt time.Time `yaml:"captured_at" json:"captured_at"`
	Tree       TreeNode  `yaml:"tree"        json:"tree"`
}
