package reconcile

import (
	"shortcut-sync/core/artwork"
	"shortcut-sync/core/library"
	"shortcut-sync/core/shortcuts"
)

// Options controls a reconciliation pass.
type Options struct {
	// Roots are the library directories to scan.
	Roots []string
	// RegistryPath is the shortcuts.vdf file to read and overwrite.
	RegistryPath string
	// DryRun stops after planning without touching the registry or artwork.
	DryRun bool
}

// ActionType represents the type of planned change.
type ActionType string

const (
	// ActionRemove drops a registry entry and evicts its artwork.
	ActionRemove ActionType = "remove"
	// ActionAdd registers a newly installed game.
	ActionAdd ActionType = "add"
)

// Action represents a planned change.
type Action struct {
	// Type specifies the action to perform.
	Type ActionType `json:"type"`

	// Key is the folded install directory basename the action matched on.
	Key string `json:"key"`

	// Name is the entry or directory name.
	Name string `json:"name"`

	// InstallDir is the install directory of the entry or candidate.
	InstallDir string `json:"install_dir"`

	// AppID is the identity of the entry being removed. Zero for additions.
	AppID uint32 `json:"app_id,omitempty"`

	// Reason explains why this action is needed.
	Reason string `json:"reason"`
}

// Plan is the diff between the registry and the scanned library.
type Plan struct {
	// Keep are entries whose install is still present, in registry order.
	Keep []shortcuts.Entry `json:"-"`

	// Stale are entries whose install is gone, in registry order.
	Stale []shortcuts.Entry `json:"-"`

	// Candidates are installs without an entry, sorted by install path.
	Candidates []library.Game `json:"-"`

	// Actions lists removals followed by additions.
	Actions []Action `json:"actions"`

	// Summary provides aggregate counts.
	Summary PlanSummary `json:"summary"`
}

// PlanSummary provides aggregate statistics for a plan.
type PlanSummary struct {
	// Registered is the number of entries in the loaded registry.
	Registered int `json:"registered"`

	// Scanned is the number of install directories found.
	Scanned int `json:"scanned"`

	// Kept counts entries left untouched.
	Kept int `json:"kept"`

	// RemoveActions counts planned removals.
	RemoveActions int `json:"remove_actions"`

	// AddActions counts planned additions.
	AddActions int `json:"add_actions"`
}

// OutcomeStatus is the result of processing one candidate.
type OutcomeStatus string

const (
	// OutcomeAdded means an entry was appended.
	OutcomeAdded OutcomeStatus = "added"
	// OutcomeSkipped means the candidate was left for a later run.
	OutcomeSkipped OutcomeStatus = "skipped"
	// OutcomeFailed means processing stopped before the entry was built.
	OutcomeFailed OutcomeStatus = "failed"
)

// Outcome records what happened to one candidate.
type Outcome struct {
	Game   library.Game  `json:"game"`
	Status OutcomeStatus `json:"status"`
	Reason string        `json:"reason,omitempty"`

	// Entry is set for added candidates.
	Entry *shortcuts.Entry `json:"-"`

	// ProviderGameID is the matched provider game, zero when unmatched.
	ProviderGameID int `json:"provider_game_id,omitempty"`

	// Artwork is set when artwork population ran.
	Artwork *artwork.Report `json:"artwork,omitempty"`
}

// Summary provides aggregate statistics for a finished pass.
type Summary struct {
	Registered int `json:"registered"`
	Scanned    int `json:"scanned"`
	Kept       int `json:"kept"`
	Removed    int `json:"removed"`
	Added      int `json:"added"`
	Skipped    int `json:"skipped"`
	Failed     int `json:"failed"`
	// Evicted counts artwork files deleted for removed entries.
	Evicted int `json:"evicted"`
}

// Result is the output of Run.
type Result struct {
	Plan     *Plan               `json:"plan"`
	Outcomes []Outcome           `json:"outcomes"`
	Registry *shortcuts.Registry `json:"-"`
	Summary  Summary             `json:"summary"`
	// Persisted reports whether the registry file was written.
	Persisted bool `json:"persisted"`
}
