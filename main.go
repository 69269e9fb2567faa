package main

import "nanoc/cmd"

func main() {
	cmd.Execute()
}
