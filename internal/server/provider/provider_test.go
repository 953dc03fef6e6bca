package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

func TestOpenAIAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, openAIChatModel, req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, RoleUser, req.Messages[1].Role)
		assert.Equal(t, "what is go", req.Messages[1].Content)

		json.NewEncoder(w).Encode(chatCompletion("a language"))
	}))
	defer srv.Close()

	p := NewOpenAIWithBaseURL("test-key", srv.URL)
	res, err := p.Ask(context.Background(), "what is go")
	require.NoError(t, err)
	assert.Equal(t, "openai", res.Source)
	assert.Equal(t, "a language", res.Text)
	assert.Equal(t, openAIConfidence, res.Confidence)
}

func TestOpenAIAskUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"quota"}}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewOpenAIWithBaseURL("test-key", srv.URL)
	_, err := p.Ask(context.Background(), "q")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestOpenAIAskNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIWithBaseURL("test-key", srv.URL)
	_, err := p.Ask(context.Background(), "q")
	require.Error(t, err)
}

func TestOpenAIGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images/generations", r.URL.Path)

		var req imageGenRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "a red fox", req.Prompt)
		assert.Equal(t, "512x512", req.Size)
		assert.Equal(t, 1, req.N)

		w.Write([]byte(`{"data":[{"url":"https://img.example/fox.png"}]}`))
	}))
	defer srv.Close()

	p := NewOpenAIWithBaseURL("test-key", srv.URL)
	url, err := p.Generate(context.Background(), "a red fox", "512x512")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/fox.png", url)
}

func TestOpenAIGenerateEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	p := NewOpenAIWithBaseURL("test-key", srv.URL)
	_, err := p.Generate(context.Background(), "a red fox", "512x512")
	require.Error(t, err)
}

func TestPerplexityAsk(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer pp-key", r.Header.Get("Authorization"))

		var req chatRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, perplexityChatModel, req.Model)

		json.NewEncoder(w).Encode(chatCompletion("precise answer"))
	}))
	defer srv.Close()

	p := NewPerplexityWithBaseURL("pp-key", srv.URL)
	res, err := p.Ask(context.Background(), "q")
	require.NoError(t, err)
	assert.Equal(t, "perplexity", res.Source)
	assert.Equal(t, "precise answer", res.Text)
	assert.Equal(t, perplexityConfidence, res.Confidence)
}

func TestElevenLabsSynthesize(t *testing.T) {
	audio := []byte("fake-mp3-bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/Rachel", r.URL.Path)
		assert.Equal(t, "el-key", r.Header.Get("xi-api-key"))

		w.Header().Set("Content-Type", "audio/mpeg")
		w.Write(audio)
	}))
	defer srv.Close()

	p := NewElevenLabsWithBaseURL("el-key", srv.URL)
	data, contentType, err := p.Synthesize(context.Background(), "hello", "Rachel")
	require.NoError(t, err)
	assert.Equal(t, audio, data)
	assert.Equal(t, "audio/mpeg", contentType)
}

func TestElevenLabsSynthesizeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer srv.Close()

	p := NewElevenLabsWithBaseURL("bad-key", srv.URL)
	_, _, err := p.Synthesize(context.Background(), "hello", "Rachel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
