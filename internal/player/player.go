// Package player builds the iframe URLs of the third-party video players.
// URL shapes belong to the providers; nothing here checks that a URL plays.
package player

import (
	"fmt"
	"net/url"

	"github.com/amaumene/mainstream/internal/constants"
)

// MovieURL returns the player URL of a movie. The player accepts either an
// IMDb id or a TMDB id.
func MovieURL(id string) string {
	return fmt.Sprintf("%s/filme/%s", constants.PlayerBaseURL, url.PathEscape(id))
}

// EpisodeURL returns the player URL of one episode of a series, by TMDB id.
// Season and episode numbers below 1 are treated as 1.
func EpisodeURL(seriesID, season, episode int) string {
	return fmt.Sprintf("%s/serie/%d/%d/%d", constants.PlayerBaseURL, seriesID, max(season, 1), max(episode, 1))
}

// StapeURL is the mirror advertised as embedUrl in structured data.
func StapeURL(imdbID string) string {
	return fmt.Sprintf("%s/stape/%s", constants.StapeBaseURL, url.PathEscape(imdbID))
}
