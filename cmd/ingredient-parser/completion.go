package main

import (
	"github.com/spf13/cobra"
)

// completeVolumetricFlag provides shell completion for
// --volumetric-units-system.
func completeVolumetricFlag(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	systems := []string{
		"us_customary\tUS customary cup/pint/quart/gallon/fl oz",
		"imperial\tImperial cup/pint/quart/gallon/fl oz",
	}
	return systems, cobra.ShellCompDirectiveNoFileComp
}
