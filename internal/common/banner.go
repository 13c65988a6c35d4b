package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	build := GetBuild()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)
	storageAddr := config.Storage.Address

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` .d8888b. 88888888888 .d88888b.   .d8888b. 888    d8P  888      8888888 888b    888 8888888888`,
		`d88P  Y88b    888    d88P" "Y88b d88P  Y88b 888   d8P   888        888   8888b   888 888`,
		`Y88b.         888    888     888 888    888 888  d8P    888        888   88888b  888 888`,
		` "Y888b.      888    888     888 888        888d88K     888        888   888Y88b 888 8888888`,
		`    "Y88b.    888    888     888 888        8888888b    888        888   888 Y88b888 888`,
		`      "888    888    888     888 888    888 888  Y88b   888        888   888  Y88888 888`,
		`Y88b  d88P    888    Y88b. .d88P Y88b  d88P 888   Y88b  888        888   888   Y8888 888`,
		` "Y8888P"     888     "Y88888P"   "Y8888P"  888    Y88b 88888888 8888888 888    Y888 8888888888`,
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n%s  Financial Record Store & Market Data Cache%s\n", textColor, banner.ColorReset)
	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	kvPad := 16
	kvLines := [][2]string{
		{"Version", version},
		{"Build", build},
		{"Environment", config.Environment},
		{"Service URL", serviceURL},
		{"Storage", storageAddr},
	}
	for _, kv := range kvLines {
		fmt.Fprintf(os.Stderr, "%s  %-*s %s%s\n", textColor, kvPad, kv[0], kv[1], banner.ColorReset)
	}

	fmt.Fprintf(os.Stderr, "\n%s\n\n", hr)

	logger.Info().
		Str("version", version).
		Str("build", build).
		Str("environment", config.Environment).
		Str("service_url", serviceURL).
		Str("storage_address", storageAddr).
		Msg("Application started")
}
