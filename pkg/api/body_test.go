package api

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadBodyUsesContentLengthWhenKnown(t *testing.T) {
	r := httptest.NewRequest("POST", "/Data.json", strings.NewReader(`{"a":1}`))
	r.ContentLength = int64(len(`{"a":1}`))

	got, err := readBody(r)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestReadBodyFallsBackToReadAllWithoutContentLength(t *testing.T) {
	r := httptest.NewRequest("POST", "/Data.json", strings.NewReader(`{"a":1}`))
	r.ContentLength = -1

	got, err := readBody(r)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestDecodeBodyUnmarshalsJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/Data.json", strings.NewReader(`{"size":7}`))
	r.ContentLength = int64(len(`{"size":7}`))

	var v struct {
		Size int `json:"size"`
	}
	require.NoError(t, decodeBody(r, &v))
	assert.Equal(t, 7, v.Size)
}
