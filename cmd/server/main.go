package main

import (
	"github.com/cmerin0/PlayersSimpleApp/internal/cli"
)

func main() {
	cli.Execute()
}
