package main

import (
	"github.com/lessbyless/lessbyless/cmd"
)

func main() {
	cmd.Execute()
}
