package llmclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectProvider(t *testing.T) {
	assert.Equal(t, ProviderSiliconFlow, DetectProvider("https://api.siliconflow.cn/v1"))
	assert.Equal(t, ProviderDeepSeek, DetectProvider("https://api.deepseek.com/v1"))
	assert.Equal(t, ProviderDeepSeek, DetectProvider("https://api.example.com/v1"))
}

func TestCall_MissingKeyIsConfigErrorNoRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	_, err := c.Call(context.Background(), Credentials{DeepSeekEndpoint: srv.URL}, "hi", "", srv.URL, 0)

	require.Error(t, err)
	var ce *CallError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, KindConfig, ce.Kind)
	assert.Contains(t, ce.Hint, "DS_KEY")
	assert.False(t, called)
}

func TestCall_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "deepseek-chat", body["model"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "hello back"}},
			},
		})
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	out, err := c.Call(context.Background(), Credentials{
		DeepSeekKey: "secret", DeepSeekEndpoint: srv.URL, DeepSeekModel: "deepseek-chat",
	}, "hi", "", srv.URL, 0)

	require.NoError(t, err)
	assert.Equal(t, "hello back", out)
}

func TestCall_ReasoningContentFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "", "reasoning_content": "thought then answer"}},
			},
		})
	}))
	defer srv.Close()

	c := New(5 * time.Second)
	out, err := c.Call(context.Background(), Credentials{
		DeepSeekKey: "secret", DeepSeekEndpoint: srv.URL,
	}, "hi", "", srv.URL, 0)

	require.NoError(t, err)
	assert.Equal(t, "thought then answer", out)
}

func TestCall_ErrorTaxonomy(t *testing.T) {
	cases := []struct {
		status int
		kind   ErrorKind
	}{
		{401, KindAuth},
		{402, KindQuota},
		{400, KindArg},
		{422, KindArg},
		{429, KindRateLimit},
		{503, KindOverload},
		{504, KindOverload},
		{500, KindServer},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
			_ = json.NewEncoder(w).Encode(map[string]any{"message": "provider said no"})
		}))

		c := New(5 * time.Second)
		_, err := c.Call(context.Background(), Credentials{
			DeepSeekKey: "secret", DeepSeekEndpoint: srv.URL,
		}, "hi", "", srv.URL, 0)

		var ce *CallError
		require.ErrorAs(t, err, &ce, "status %d", tc.status)
		assert.Equal(t, tc.kind, ce.Kind, "status %d", tc.status)
		srv.Close()
	}
}

func TestCall_SiliconFlowIncludesExtraFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 0.2, body["temperature"])
		assert.Equal(t, 0.7, body["top_p"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"content": "ok"}}},
		})
	}))
	defer srv.Close()

	// simulate a siliconflow-substring endpoint via a wrapping path segment.
	endpoint := srv.URL + "/siliconflow"

	c := New(5 * time.Second)
	_, err := c.Call(context.Background(), Credentials{
		SiliconFlowKey: "sf-secret", SiliconFlowEndpoint: endpoint,
	}, "hi", "", endpoint, 0)
	require.NoError(t, err)
}
