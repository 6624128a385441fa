package main

import "josephlewis.net/picosh/cmd"

func main() {
	cmd.Execute()
}
