package main

import "github.com/lepinkainen/watchlog/cmd"

var execute = cmd.Execute

func main() {
	execute()
}
