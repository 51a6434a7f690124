package runner

import "github.com/projectdiscovery/gologger"

const banner = `
   __                __
  / /  ___  ___ ____/ /____ _    _____ ___ ___
 / _ \/ _ \(_-</ __(_-< |/|/ / -_) -_) _ \
/_//_/\___/___/\__/___/__,__/\__/\__/ .__/
                                   /_/
`

// version is set at build time via ldflags
var version = "v0.1.0"

// showBanner is used to show the banner to the user
func showBanner() {
	gologger.Print().Msgf("%s\n", banner)
	gologger.Print().Msgf("\t\thostsweep %s\n\n", version)
}
