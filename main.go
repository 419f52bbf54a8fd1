package main

import "shortcut-sync/cmd"

func main() {
	cmd.Execute()
}
