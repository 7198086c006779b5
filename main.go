package main

import "github.com/zjrosen/taskboard/cmd"

func main() {
	cmd.Execute()
}
