package main

import (
	"fmt"
	"os"

	"github.com/papergrade/papergrade"
)

// Run executes the score command.
func (c *ScoreCmd) Run(deps *Dependencies) error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	score := papergrade.ExtractScore(string(data), c.MaxPoints)
	fmt.Fprintf(deps.Stdout, "%.1f / %d\n", score, c.MaxPoints)
	return nil
}
