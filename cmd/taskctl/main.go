package main

import "taskboard/cmd/taskctl/cmd"

func main() {
	cmd.Execute()
}
