package main

import "github.com/theirongolddev/pcalc/cmd"

func main() {
	cmd.Execute()
}
