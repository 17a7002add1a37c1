// Package constants defines numerical limits used by page assembly.
package constants

const (
	// Ranked rows skip the hero item and show at most this many entries.
	RankedRowSize = 19

	// Search dropdown shows at most this many results.
	SearchResultLimit = 5

	// Minimum query length before the browser calls the proxy.
	SearchMinQueryLength = 3

	// Episode runtime assumed for series in structured data, in minutes.
	DefaultEpisodeRuntime = 45

	// Maximum catalog page TMDB accepts.
	MaxDiscoverPage = 500
)
