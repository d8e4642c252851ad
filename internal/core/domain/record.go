package domain

import "time"

// BuildRecord describes the last successful orchestration of a build directory.
type BuildRecord struct {
	BuildDir    string    `json:"build_dir"`
	Fingerprint string    `json:"fingerprint"`
	Platform    Platform  `json:"platform"`
	Toolchain   Toolchain `json:"toolchain,omitempty"`
	Kind        BuildKind `json:"build_type"`
	Generator   string    `json:"generator"`
	Phases      []Phase   `json:"phases"`
	FinishedAt  time.Time `json:"finished_at"`
}
