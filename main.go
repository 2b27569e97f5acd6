package main

import "github.com/mzahur/vidgrab/cmd"

func main() {
	cmd.Execute()
}
