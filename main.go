package main

import "github.com/lucasmbr/deliverydash/cmd"

func main() {
	cmd.Execute()
}
