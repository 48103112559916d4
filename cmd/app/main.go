package main

import "fooddispatch/cmd"

func main() {
	cmd.Execute()
}
