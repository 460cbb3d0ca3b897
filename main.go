package main

import "storybot/cmd"

func main() {
	cmd.Execute()
}
