package main

import (
	_ "time/tzdata"

	"github.com/aalvaropc/rashi/internal/cli"
)

func main() {
	cli.Execute()
}
