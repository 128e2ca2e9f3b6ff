package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postShare(t *testing.T, body string) (int, map[string]string) {
	t.Helper()
	rr := httptest.NewRecorder()
	Share(rr, httptest.NewRequest(http.MethodPost, "/api/social", strings.NewReader(body)))
	var out map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return rr.Code, out
}

func TestShare_Twitter(t *testing.T) {
	t.Parallel()

	code, body := postShare(t, `{"platform":"twitter","text":"hi","url":"http://e.co"}`)
	require.Equal(t, http.StatusOK, code)
	u := body["shareUrl"]
	assert.Contains(t, u, "twitter.com/intent/tweet")
	assert.Contains(t, u, "text=hi")
	assert.Contains(t, u, "url=http%3A%2F%2Fe.co")
}

func TestShare_UnknownPlatform_ReturnsRawURL(t *testing.T) {
	t.Parallel()

	code, body := postShare(t, `{"platform":"unknown","url":"http://e.co"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "http://e.co", body["shareUrl"])
}

func TestShare_MissingPlatform_400(t *testing.T) {
	t.Parallel()

	for _, b := range []string{`{}`, `{"platform":""}`, ``} {
		code, body := postShare(t, b)
		assert.Equal(t, http.StatusBadRequest, code, "body %q", b)
		assert.Equal(t, "Missing platform", body["error"], "body %q", b)
	}
}

func TestShare_Instagram_AlwaysHome(t *testing.T) {
	t.Parallel()

	code, body := postShare(t, `{"platform":"IG","text":"hi","url":"http://e.co"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "https://www.instagram.com/", body["shareUrl"])
}

func TestShare_InvalidJSON_400(t *testing.T) {
	t.Parallel()

	code, body := postShare(t, `{"platform":`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid request body", body["error"])
}
