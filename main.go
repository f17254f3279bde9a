package main

import "github.com/savespree/savespree/cmd"

func main() {
	cmd.Execute()
}
