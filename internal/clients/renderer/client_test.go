package renderer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campaign-engine/internal/observability"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRender(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/render", r.URL.Path)
		var req renderRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.TemplateID == "broken" {
			http.Error(w, "bad template", http.StatusUnprocessableEntity)
			return
		}
		_ = json.NewEncoder(w).Encode(Rendered{
			Subject: req.Variables["subject"],
			Body:    "<p>" + req.Variables["body"] + "</p>",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second, observability.NewNopLogger())

	out, err := c.Render(context.Background(), "tpl-1", map[string]string{"subject": "Hi", "body": "Hello"})
	require.NoError(t, err)
	assert.Equal(t, Rendered{Subject: "Hi", Body: "<p>Hello</p>"}, out)

	_, err = c.Render(context.Background(), "broken", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
}

type countingRenderer struct {
	calls int
	err   error
}

func (c *countingRenderer) Render(ctx context.Context, templateID string, variables map[string]string) (Rendered, error) {
	c.calls++
	if c.err != nil {
		return Rendered{}, c.err
	}
	return Rendered{Body: templateID + ":" + variables["body"]}, nil
}

func TestCache(t *testing.T) {
	t.Parallel()

	inner := &countingRenderer{}
	cache, err := NewCache(inner, 2)
	require.NoError(t, err)

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		out, err := cache.Render(ctx, "content:1:a", "tpl", map[string]string{"body": "x"})
		require.NoError(t, err)
		assert.Equal(t, "tpl:x", out.Body)
	}
	assert.Equal(t, 1, inner.calls)

	_, err = cache.Render(ctx, "content:2:a", "tpl", map[string]string{"body": "y"})
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
	assert.Equal(t, 2, cache.Len())

	inner.err = errors.New("renderer down")
	_, err = cache.Render(ctx, "content:3:a", "tpl", nil)
	require.Error(t, err)
	assert.Equal(t, 2, cache.Len(), "failed renders are not cached")
}
