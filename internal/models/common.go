package models

// ExternalIDs holds third-party catalog identifiers for a title.
type ExternalIDs struct {
	ID     int    `json:"id"`
	IMDBID string `json:"imdb_id"`
}

// ErrorResponse is the body returned by the proxy on failure.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StringValue dereferences a nullable TMDB string.
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
