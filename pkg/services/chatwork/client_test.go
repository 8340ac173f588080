package chatwork

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	var gotPath, gotToken, gotBody string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-ChatWorkToken")
		_ = r.ParseForm()
		gotBody = r.PostFormValue("body")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewClient("tok-123", WithAPIBase(ts.URL))
	err := c.SendMessage(context.Background(), 42, "[info][title]t[/title]hello[/info]")
	require.NoError(t, err)

	assert.Equal(t, "/rooms/42/messages", gotPath)
	assert.Equal(t, "tok-123", gotToken)
	assert.Equal(t, "[info][title]t[/title]hello[/info]", gotBody)
}

func TestSendMessageFail(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"errors":["invalid token"]}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := NewClient("bad", WithAPIBase(ts.URL))
	err := c.SendMessage(context.Background(), 42, "hi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "room 42")
}
