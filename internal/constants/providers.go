package constants

// Video-embed providers. URL shapes are owned by the providers.
const (
	PlayerBaseURL = "https://playerflixapi.com"
	StapeBaseURL  = "https://superflixapi.bond"

	// Recognized video host and classifications for trailer selection.
	TrailerSite        = "YouTube"
	TrailerTypeTrailer = "Trailer"
	TrailerTypeTeaser  = "Teaser"
)
