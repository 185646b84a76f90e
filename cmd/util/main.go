package main

import (
	"github.com/onflow/starkhash/cmd/util/cmd"
)

func main() {
	cmd.Execute()
}
