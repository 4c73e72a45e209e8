package main

import (
	"os"

	"github.com/chennbnbnb/JDoop-release/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
