package outwriter

import (
	"fmt"
	"os"

	"github.com/geoqa/geoqa/internal/contract"
)

// Banners go to stderr so stdout stays reserved for data output.
const bannerPathWidth = 60

// LogAssessHeader prints a concise, 2-line banner for each assessment phase.
func LogAssessHeader(cfg *contract.Config) {
	// Line 1: The dataset identity (name and worker count)
	fmt.Fprintf(os.Stderr, "🔎 Dataset: %s (Workers: %d)\n", cfg.DatasetName, cfg.Workers)

	// Line 2: The source file being assessed
	fmt.Fprintf(os.Stderr, "📦 Source: %s\n", contract.TruncatePath(cfg.DatasetPath, bannerPathWidth))
}

// LogCompareHeader prints a banner for baseline comparison.
func LogCompareHeader(cfg *contract.Config) {
	fmt.Fprintf(os.Stderr, "🔎 Dataset: %s (Workers: %d)\n", cfg.DatasetName, cfg.Workers)
	fmt.Fprintf(os.Stderr, "📊 Comparing: %s ↔ %s\n",
		contract.DatasetNameFromPath(cfg.BasePath), cfg.DatasetName)
}
