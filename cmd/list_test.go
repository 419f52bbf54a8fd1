package cmd

import (
	"testing"

	"shortcut-sync/core/shortcuts"

	"github.com/stretchr/testify/assert"
)

func TestListEntries(t *testing.T) {
	foo := shortcuts.NewEntry(0x80000001, "Foo", `C:\Games\Foo\foo.exe`, `C:\Games\Foo`)
	foo.Tags = shortcuts.Tags{{Key: "0", Value: "favorite"}, {Key: "1", Value: "rpg"}}
	bar := shortcuts.NewEntry(0x80000002, "Bar", "", "")
	bar.Exe = `"/games/Bar/bar.exe" -windowed`

	got := listEntries(&shortcuts.Registry{Entries: []shortcuts.Entry{foo, bar}})

	assert.Equal(t, []listedEntry{
		{AppID: 0x80000001, Name: "Foo", Exe: `C:\Games\Foo\foo.exe`, StartDir: `C:\Games\Foo`, Tags: []string{"favorite", "rpg"}},
		{AppID: 0x80000002, Name: "Bar", Exe: "/games/Bar/bar.exe", StartDir: ""},
	}, got)
	assert.Empty(t, listEntries(&shortcuts.Registry{}))
}
