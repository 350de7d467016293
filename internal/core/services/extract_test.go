package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseJSON(t *testing.T, raw string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(raw), &v))
	return v
}

func TestIsImageURL(t *testing.T) {
	assert.True(t, IsImageURL("https://x.com/a.png"))
	assert.True(t, IsImageURL("https://x.com/a.JPEG"))
	assert.True(t, IsImageURL("https://x.com/a.webp?width=512"))
	assert.True(t, IsImageURL("https://x.com/a.svg#icon"))
	assert.False(t, IsImageURL("https://x.com/a.mp4"))
	assert.False(t, IsImageURL("not-an-image"))
}

func TestExtract_NestedContainer(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"sticker":{"url":"https://x.com/a.png"}}`)

	location, found := ex.Extract(v, "")
	assert.True(t, found)
	assert.Equal(t, "https://x.com/a.png", location)
}

func TestExtract_ExplicitFieldPath(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"data":{"link":"https://x.com/a.webp"}}`)

	location, found := ex.Extract(v, "data.link")
	assert.True(t, found)
	assert.Equal(t, "https://x.com/a.webp", location)
}

func TestExtract_ExplicitPathWrongShapeFallsThrough(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"meta":{"count":3},"url":"https://x.com/b.gif"}`)

	// the resolved path is not a string: not an error, search continues
	location, found := ex.Extract(v, "meta.count")
	assert.True(t, found)
	assert.Equal(t, "https://x.com/b.gif", location)
}

func TestExtract_TopLevelFallback(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"src":"https://x.com/c.jpg"}`)

	location, found := ex.Extract(v, "")
	assert.True(t, found)
	assert.Equal(t, "https://x.com/c.jpg", location)
}

func TestExtract_NoExtensionMatch(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"foo":"not-an-image"}`)

	_, found := ex.Extract(v, "")
	assert.False(t, found)
}

func TestExtract_NonObjectValue(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())

	_, found := ex.Extract(parseJSON(t, `["https://x.com/a.png"]`), "")
	assert.False(t, found)

	_, found = ex.Extract(parseJSON(t, `"https://x.com/a.png"`), "")
	assert.False(t, found)
}

func TestExtract_RequestedFieldSearchedFirstInContainers(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"data":{"custom":"https://x.com/want.png","url":"https://x.com/other.png"}}`)

	location, found := ex.Extract(v, "custom")
	assert.True(t, found)
	assert.Equal(t, "https://x.com/want.png", location)
}

func TestExtract_Idempotent(t *testing.T) {
	ex := NewExtractor(DefaultSearchOrder())
	v := parseJSON(t, `{"sticker":{"url":"https://x.com/a.png"}}`)

	first, foundFirst := ex.Extract(v, "")
	second, foundSecond := ex.Extract(v, "")
	assert.Equal(t, foundFirst, foundSecond)
	assert.Equal(t, first, second)
}

func TestExtract_CustomSearchOrder(t *testing.T) {
	ex := NewExtractor(SearchOrder{
		Containers: []string{"payload"},
		Fields:     []string{"href"},
	})
	v := parseJSON(t, `{"payload":{"href":"https://x.com/a.bmp"}}`)

	location, found := ex.Extract(v, "")
	assert.True(t, found)
	assert.Equal(t, "https://x.com/a.bmp", location)
}
