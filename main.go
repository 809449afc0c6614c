package main

import "github.com/hrsuite/hr-management/cmd"

func main() {
	cmd.Execute()
}
