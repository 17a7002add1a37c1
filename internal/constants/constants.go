// Package constants defines application-wide constants and default values.
package constants

const (
	// Site metadata
	SiteName        = "Main Stream"
	SiteDescription = "Filmes e séries online, dublados e legendados."
	DefaultSiteURL  = "https://mainstream.com"

	// Default configuration values
	DefaultPort     = "5000"
	DefaultLogLevel = "info"
	DefaultLanguage = "pt-BR"

	// Metadata provider
	TMDBAPIBase   = "https://api.themoviedb.org/3"
	TMDBImageBase = "https://image.tmdb.org/t/p"

	// Image sizes and placeholders used when a record has no artwork
	PosterSize          = "w500"
	SearchPosterSize    = "w92"
	BackdropSize        = "original"
	PlaceholderPoster   = "/placeholder-poster.svg"
	PlaceholderBackdrop = "/placeholder-backdrop.svg"

	// Cache settings. Zero size means the memory tier is bounded only by TTL.
	DefaultCacheSize = 0

	// Proxy rate limiting (requests per second per client IP). Zero disables.
	DefaultProxyRateLimit = 10
	DefaultProxyRateBurst = 20
)

// TMDBMovieGenres contains TMDB genre IDs for movies.
var TMDBMovieGenres = []string{
	"28",    // Action
	"12",    // Adventure
	"16",    // Animation
	"35",    // Comedy
	"80",    // Crime
	"99",    // Documentary
	"18",    // Drama
	"10751", // Family
	"14",    // Fantasy
	"36",    // History
	"27",    // Horror
	"10402", // Music
	"9648",  // Mystery
	"10749", // Romance
	"878",   // Science Fiction
	"10770", // TV Movie
	"53",    // Thriller
	"10752", // War
	"37",    // Western
}

// TMDBTVGenres contains TMDB genre IDs for TV series.
var TMDBTVGenres = []string{
	"10759", // Action & Adventure
	"16",    // Animation
	"35",    // Comedy
	"80",    // Crime
	"99",    // Documentary
	"18",    // Drama
	"10751", // Family
	"10762", // Kids
	"9648",  // Mystery
	"10763", // News
	"10764", // Reality
	"10765", // Sci-Fi & Fantasy
	"10766", // Soap
	"10767", // Talk
	"10768", // War & Politics
	"37",    // Western
}

// IsKnownGenre reports whether id is a TMDB genre for the given kind
// ("movie" or "tv").
func IsKnownGenre(kind, id string) bool {
	list := TMDBMovieGenres
	if kind == "tv" {
		list = TMDBTVGenres
	}
	for _, g := range list {
		if g == id {
			return true
		}
	}
	return false
}
