// The main package for the sih2025 executable.
package main

import (
	"github.com/Recklore/sih2025/cmd"
)

func main() {
	cmd.Execute()
}
