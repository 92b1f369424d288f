package main

import (
	"fmt"

	"github.com/fwojciec/htmlsift"
)

// Run executes the match command.
func (c *MatchCmd) Run(deps *Dependencies) error {
	selectors := deps.Resolver.Resolve(c.URL)
	if len(selectors) == 0 {
		fmt.Fprintf(deps.Stdout, "No rules match. The default selector `%s` applies.\n", htmlsift.DefaultSelector.Selector)
		return nil
	}

	for _, s := range selectors {
		mode := "first"
		if s.Multiple {
			mode = "all"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s\n", mode, s.Selector)
	}
	return nil
}
