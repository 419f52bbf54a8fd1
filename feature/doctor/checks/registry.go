package checks

import (
	"os"
	"sort"

	"shortcut-sync/core/identity"
	"shortcut-sync/core/reconcile"
	"shortcut-sync/core/shortcuts"
)

// Collision is a set of entries sharing one identity.
type Collision struct {
	AppID uint32   `json:"app_id"`
	Names []string `json:"names"`
}

// DuplicateInstall is a set of entries matched to the same install directory name.
type DuplicateInstall struct {
	Key   string   `json:"key"`
	Names []string `json:"names"`
}

// RegistryReport summarizes the health of the registry.
type RegistryReport struct {
	Entries int `json:"entries"`
	// Collisions are identities used by more than one entry. They are reported, not fixed.
	Collisions []Collision `json:"collisions"`
	// DuplicateInstalls break the one-entry-per-install rule.
	DuplicateInstalls []DuplicateInstall `json:"duplicate_installs"`
	// MissingExecutables names entries whose launch target no longer exists.
	MissingExecutables []string `json:"missing_executables"`
	// Unmarked names entries whose identity lacks the shortcut bit.
	Unmarked []string `json:"unmarked"`
}

// Healthy reports whether no problem was found.
func (r *RegistryReport) Healthy() bool {
	return len(r.Collisions) == 0 && len(r.DuplicateInstalls) == 0 &&
		len(r.MissingExecutables) == 0 && len(r.Unmarked) == 0
}

// CheckRegistry inspects reg for identity collisions and stale entries.
func CheckRegistry(reg *shortcuts.Registry) *RegistryReport {
	report := &RegistryReport{Entries: reg.Len()}

	byID := make(map[uint32][]string)
	byKey := make(map[string][]string)
	for _, e := range reg.Entries {
		byID[e.AppID] = append(byID[e.AppID], e.AppName)
		key := reconcile.MatchKey(e.StartDirPath())
		byKey[key] = append(byKey[key], e.AppName)

		if !identity.IsShortcut(e.AppID) {
			report.Unmarked = append(report.Unmarked, e.AppName)
		}
		if exe := e.ExePath(); exe != "" {
			if _, err := os.Stat(exe); os.IsNotExist(err) {
				report.MissingExecutables = append(report.MissingExecutables, e.AppName)
			}
		}
	}

	for id, names := range byID {
		if len(names) > 1 {
			report.Collisions = append(report.Collisions, Collision{AppID: id, Names: names})
		}
	}
	sort.Slice(report.Collisions, func(i, j int) bool { return report.Collisions[i].AppID < report.Collisions[j].AppID })

	for key, names := range byKey {
		if len(names) > 1 {
			report.DuplicateInstalls = append(report.DuplicateInstalls, DuplicateInstall{Key: key, Names: names})
		}
	}
	sort.Slice(report.DuplicateInstalls, func(i, j int) bool { return report.DuplicateInstalls[i].Key < report.DuplicateInstalls[j].Key })

	return report
}
