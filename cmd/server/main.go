package main

import "github.com/island-scholars/server/cmd/server/cmd"

func main() {
	cmd.Execute()
}
