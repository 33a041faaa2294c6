package main

import (
	"github.com/ocrtools/textpost/cmd/textpost/cmd"
)

func main() {
	cmd.Execute()
}
