package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/gregohare/finout-top-costs/pkg/version"
)

// displayWelcomeBanner shows the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$$$                           /$$$$$$                        /$$
        |__  $$__/                          /$$__  $$                      | $$
           | $$  /$$$$$$   /$$$$$$        | $$  \__/  /$$$$$$   /$$$$$$$ /$$$$$$    /$$$$$$$
           | $$ /$$__  $$ /$$__  $$       | $$       /$$__  $$ /$$_____/|_  $$_/   /$$_____/
           | $$| $$  \ $$| $$  \ $$       | $$      | $$  \ $$|  $$$$$$   | $$    |  $$$$$$
           | $$| $$  | $$| $$  | $$       | $$    $$| $$  | $$ \____  $$  | $$ /$$ \____  $$
           | $$|  $$$$$$/| $$$$$$$/       |  $$$$$$/|  $$$$$$/ /$$$$$$$/  |  $$$$/ /$$$$$$$/
           |__/ \______/ | $$____/         \______/  \______/ |_______/    \___/  |_______/
                         | $$
                         |__/
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))

	formattedVersion := version.FormatVersion()
	fmt.Println(blue(fmt.Sprintf("Finout Top Costs CLI (v%s)", formattedVersion)))
}
