package main

import "github.com/hfwin/handsfree/cmd"

func main() {
	cmd.Execute()
}
