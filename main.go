package main

import "github.com/hmans/rolodex/cmd"

func main() {
	cmd.Execute()
}
