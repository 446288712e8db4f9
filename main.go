package main

import "github.com/voxchat/backend/cmd"

func main() {
	cmd.Execute()
}
