package main

import (
	"github.com/sst/piechart/cmd"
	"github.com/sst/piechart/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", nil)

	cmd.Execute()
}
