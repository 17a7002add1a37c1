package media

import (
	"encoding/json"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaumene/mainstream/internal/constants"
	"github.com/amaumene/mainstream/internal/models"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Duna: Parte Dois", "duna-parte-dois"},
		{"  Spider-Man: No Way Home  ", "spider-man-no-way-home"},
		{"O Auto da Compadecida", "o-auto-da-compadecida"},
		{"Amélie", "amelie"},
		{"Coração Valente", "coracao-valente"},
		{"Mission: Impossible -- Dead Reckoning", "mission-impossible-dead-reckoning"},
		{"1917", "1917"},
		{"", ""},
		{"!!!", ""},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, Slug(tt.title))
		})
	}
}

func TestSlugIsIdempotent(t *testing.T) {
	for _, title := range []string{"Duna: Parte Dois", "Ça & Là", "  a  b  ", "Spider-Man: No Way Home", "千と千尋の神隠し"} {
		once := Slug(title)
		assert.Equal(t, once, Slug(once), title)
	}
}

func TestSlugTransliteratesNonLatinTitles(t *testing.T) {
	s := Slug("千と千尋の神隠し")
	assert.NotEmpty(t, s)
	assert.Regexp(t, regexp.MustCompile(`^[a-z0-9-]+$`), s)
}

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, "2024", ReleaseYear("2024-02-27"))
	assert.Equal(t, "1999", ReleaseYear("1999"))
	assert.Equal(t, "", ReleaseYear(""))
	assert.Equal(t, "", ReleaseYear("soon"))
}

func TestSelectTrailer(t *testing.T) {
	videos := []models.Video{
		{Site: "Vimeo", Type: "Trailer", Key: "v1"},
		{Site: "YouTube", Type: "Teaser", Key: "y1"},
		{Site: "YouTube", Type: "Trailer", Key: "y2"},
	}
	ref, ok := SelectTrailer(videos)
	require.True(t, ok)
	assert.Equal(t, "y1", ref.Key)
	assert.Equal(t, "Teaser", ref.Type)
	assert.Contains(t, ref.EmbedURL(), "https://www.youtube.com/embed/y1")

	_, ok = SelectTrailer([]models.Video{{Site: "YouTube", Type: "Featurette", Key: "f"}})
	assert.False(t, ok)

	_, ok = SelectTrailer(nil)
	assert.False(t, ok)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Kind
	}{
		{"tagged movie", `{"media_type":"movie","name":"odd"}`, KindMovie},
		{"tagged tv", `{"media_type":"tv","title":"odd"}`, KindSeries},
		{"untagged with title", `{"id":1,"title":"Duna"}`, KindMovie},
		{"untagged with name", `{"id":1,"name":"Dark"}`, KindSeries},
		{"malformed", `not json`, KindSeries},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(json.RawMessage(tt.raw)))
		})
	}
}

func TestDecode(t *testing.T) {
	rec, err := Decode(json.RawMessage(`{"media_type":"movie","id":693134,"title":"Duna: Parte Dois","release_date":"2024-02-27","poster_path":"/p.jpg","vote_average":8.2}`))
	require.NoError(t, err)
	assert.True(t, rec.IsMovie())
	assert.Equal(t, 693134, rec.ID())
	assert.Equal(t, "Duna: Parte Dois", rec.DisplayTitle())
	assert.Equal(t, "2024", rec.ReleaseYear())
	assert.Equal(t, "8.2", rec.Rating())
	assert.Equal(t, constants.TMDBImageBase+"/w500/p.jpg", rec.PosterURL())
	assert.Equal(t, constants.PlaceholderBackdrop, rec.BackdropURL())
	assert.Equal(t, "/assistir/duna-parte-dois?id=693134&type=movie", rec.WatchPath())

	rec, err = Decode(json.RawMessage(`{"media_type":"tv","id":1396,"name":"Breaking Bad","first_air_date":"2008-01-20"}`))
	require.NoError(t, err)
	assert.Equal(t, KindSeries, rec.Kind)
	assert.Equal(t, "Breaking Bad", rec.DisplayTitle())
	assert.Equal(t, "2008", rec.ReleaseYear())
	assert.Equal(t, "Série", rec.Kind.Label())

	_, err = Decode(json.RawMessage(`{"media_type":"person","id":1,"name":"Zendaya"}`))
	assert.ErrorIs(t, err, ErrUnsupportedKind)
}

func TestDecodeAsUsesEndpointKind(t *testing.T) {
	// A series record without a name still decodes as a series when the
	// endpoint is kind-scoped.
	rec, err := DecodeAs(KindSeries, json.RawMessage(`{"id":7,"title":"stray"}`))
	require.NoError(t, err)
	assert.Equal(t, KindSeries, rec.Kind)
	assert.Equal(t, 7, rec.ID())
	assert.Equal(t, "", rec.DisplayTitle())
}

func TestDecodeListSkipsPeople(t *testing.T) {
	raws := []json.RawMessage{
		json.RawMessage(`{"media_type":"movie","id":1,"title":"A"}`),
		json.RawMessage(`{"media_type":"person","id":2,"name":"B"}`),
		json.RawMessage(`{"media_type":"tv","id":3,"name":"C"}`),
	}
	recs, err := DecodeList(raws)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, 1, recs[0].ID())
	assert.Equal(t, 3, recs[1].ID())
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("series")
	assert.True(t, ok)
	assert.Equal(t, KindSeries, k)
	_, ok = ParseKind("person")
	assert.False(t, ok)
}

func TestDecodePage(t *testing.T) {
	raw := models.RawPage{
		Page:         2,
		TotalPages:   9,
		TotalResults: 170,
		Results: []json.RawMessage{
			json.RawMessage(`{"id":1,"name":"Dark"}`),
			json.RawMessage(`{"id":2,"name":"Lost"}`),
		},
	}
	page, err := DecodePage(KindSeries, raw)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 9, page.TotalPages)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "Lost", page.Records[1].DisplayTitle())

	mixed, err := DecodePage("", models.RawPage{Results: []json.RawMessage{
		json.RawMessage(`{"media_type":"person","id":3}`),
		json.RawMessage(`{"media_type":"movie","id":4,"title":"Up"}`),
	}})
	require.NoError(t, err)
	require.Len(t, mixed.Records, 1)
	assert.True(t, mixed.Records[0].IsMovie())
}
