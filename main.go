package main

import "github.com/clinicore/hr-management/cmd"

func main() {
	cmd.Execute()
}
