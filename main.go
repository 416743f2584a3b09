package main

import "github.com/noulaye/Scrap-beac/cmd"

func main() {
	cmd.Execute()
}
