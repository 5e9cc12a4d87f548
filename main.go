package main

import "github.com/adroitwhiz/scratch-vm/cmd"

func main() {
	cmd.Execute()
}
