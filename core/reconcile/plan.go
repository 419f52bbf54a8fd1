package reconcile

import (
	"strings"

	"shortcut-sync/core/library"
	"shortcut-sync/core/shortcuts"

	"golang.org/x/text/cases"
)

// MatchKey returns the key entries and installs are matched on: the case-folded basename
// of dir. Both slash styles separate components so registries written on another platform
// still match.
func MatchKey(dir string) string {
	dir = strings.TrimRight(strings.ReplaceAll(dir, `\`, "/"), "/")
	if i := strings.LastIndex(dir, "/"); i >= 0 {
		dir = dir[i+1:]
	}
	return cases.Fold().String(dir)
}

// BuildPlan diffs reg against the scanned games. It does not modify either input.
func BuildPlan(reg *shortcuts.Registry, games map[string]library.Game) *Plan {
	plan := &Plan{}
	plan.Summary.Registered = reg.Len()
	plan.Summary.Scanned = len(games)

	scanned := make(map[string]struct{}, len(games))
	for _, g := range games {
		scanned[MatchKey(g.InstallDir)] = struct{}{}
	}

	registered := make(map[string]struct{}, reg.Len())
	if reg != nil {
		for _, entry := range reg.Entries {
			key := MatchKey(entry.StartDirPath())
			registered[key] = struct{}{}

			if _, ok := scanned[key]; ok {
				plan.Keep = append(plan.Keep, entry)
				continue
			}
			plan.Stale = append(plan.Stale, entry)
			plan.Actions = append(plan.Actions, Action{
				Type:       ActionRemove,
				Key:        key,
				Name:       entry.AppName,
				InstallDir: entry.StartDirPath(),
				AppID:      entry.AppID,
				Reason:     "install directory no longer present",
			})
		}
	}

	for _, g := range library.Sorted(games) {
		key := MatchKey(g.InstallDir)
		if _, ok := registered[key]; ok {
			continue
		}
		plan.Candidates = append(plan.Candidates, g)
		plan.Actions = append(plan.Actions, Action{
			Type:       ActionAdd,
			Key:        key,
			Name:       g.Name,
			InstallDir: g.InstallDir,
			Reason:     "install directory not registered",
		})
	}

	plan.Summary.Kept = len(plan.Keep)
	plan.Summary.RemoveActions = len(plan.Stale)
	plan.Summary.AddActions = len(plan.Candidates)
	return plan
}

// ActionsOf returns the actions of type t in plan order.
func (p *Plan) ActionsOf(t ActionType) []Action {
	var out []Action
	for _, a := range p.Actions {
		if a.Type == t {
			out = append(out, a)
		}
	}
	return out
}
