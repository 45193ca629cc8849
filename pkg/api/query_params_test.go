package api

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func b64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func TestParseQueryRequiresHostname(t *testing.T) {
	_, err := parseQuery(url.Values{})
	require.Error(t, err)
}

func TestParseQueryDecodesBase64Filename(t *testing.T) {
	v := url.Values{"hostname": {"alice"}, "filename": {b64(".*passwd$")}}
	q, err := parseQuery(v)
	require.NoError(t, err)
	assert.Equal(t, ".*passwd$", q.Filename)
}

func TestParseQueryDefaultsEmptyFilenameToMatchAll(t *testing.T) {
	v := url.Values{"hostname": {"alice"}}
	q, err := parseQuery(v)
	require.NoError(t, err)
	assert.Equal(t, ".*", q.Filename)
}

func TestParseQueryLatestAndReducedAreLiteralTrueFalse(t *testing.T) {
	v := url.Values{"hostname": {"alice"}, "latest": {"True"}, "reduced": {"False"}}
	q, err := parseQuery(v)
	require.NoError(t, err)
	assert.True(t, q.Latest)
	assert.False(t, q.Reduced)

	v2 := url.Values{"hostname": {"alice"}, "latest": {"true"}}
	q2, err := parseQuery(v2)
	require.NoError(t, err)
	assert.False(t, q2.Latest, "lowercase \"true\" is not the literal \"True\"")
}

func TestParseQueryParsesRFC3339AndDateOnlyDates(t *testing.T) {
	v := url.Values{
		"hostname":   {"alice"},
		"date":       {b64("2024-01-02")},
		"afterdate":  {b64("2024-01-01T00:00:00Z")},
		"beforedate": {b64("2024-01-03")},
	}
	q, err := parseQuery(v)
	require.NoError(t, err)
	require.NotNil(t, q.Date)
	require.NotNil(t, q.AfterDate)
	require.NotNil(t, q.BeforeDate)
	assert.Equal(t, 2, q.Date.Day())
}

func TestParseQueryRejectsInvalidBase64(t *testing.T) {
	v := url.Values{"hostname": {"alice"}, "filename": {"not-base64!!"}}
	_, err := parseQuery(v)
	assert.Error(t, err)
}

func TestParseQueryRejectsInvalidUid(t *testing.T) {
	v := url.Values{"hostname": {"alice"}, "uid": {"nope"}}
	_, err := parseQuery(v)
	assert.Error(t, err)
}
