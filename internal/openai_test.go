package internal

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// chatRequest is what a stub saw of one chat completion call
type chatRequest struct {
	Path          string
	Authorization string
	Body          map[string]any
}

type chatStub struct {
	mu       sync.Mutex
	requests []chatRequest
}

func (s *chatStub) all() []chatRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]chatRequest(nil), s.requests...)
}

// chatCompletion wraps content in a minimal chat completion response
func chatCompletion(content string) string {
	data, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-test",
		"object":  "chat.completion",
		"created": 0,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"finish_reason": "stop",
			"message":       map[string]any{"role": "assistant", "content": content},
		}},
	})
	return string(data)
}

// newChatStub serves a fixed status and body for every chat completion request
func newChatStub(t *testing.T, status int, body string) (*httptest.Server, *chatStub) {
	t.Helper()
	stub := &chatStub{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var decoded map[string]any
		_ = json.Unmarshal(raw, &decoded)

		stub.mu.Lock()
		stub.requests = append(stub.requests, chatRequest{
			Path:          r.URL.Path,
			Authorization: r.Header.Get("Authorization"),
			Body:          decoded,
		})
		stub.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, stub
}

func newTestAI(baseURL string, metrics *Metrics) *AI {
	return NewAI(AISettings{
		Model:       "gpt-4o-mini",
		BaseURL:     baseURL + "/",
		Temperature: 0.8,
		MaxTokens:   500,
	}, nil, zap.NewNop(), metrics)
}

func TestTitleVariations(t *testing.T) {
	content := `[{"tone":"casual","title":"Rick Just Won't Let You Down"},{"tone":"professional","title":"A Commitment Never to Give Up"}]`
	srv, stub := newChatStub(t, http.StatusOK, chatCompletion(content))

	variations, err := newTestAI(srv.URL, nil).TitleVariations(context.Background(), "Never Gonna Give You Up", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, []TitleVariation{
		{Tone: "casual", Title: "Rick Just Won't Let You Down"},
		{Tone: "professional", Title: "A Commitment Never to Give Up"},
	}, variations)

	requests := stub.all()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, "/chat/completions", req.Path)
	assert.Equal(t, "Bearer sk-test", req.Authorization)
	assert.Equal(t, "gpt-4o-mini", req.Body["model"])
	assert.InDelta(t, 0.8, req.Body["temperature"], 1e-9)
	assert.InDelta(t, 500, req.Body["max_tokens"], 1e-9)
	assert.Equal(t, map[string]any{"type": "json_object"}, req.Body["response_format"])

	messages, ok := req.Body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	system := messages[0].(map[string]any)
	user := messages[1].(map[string]any)
	assert.Equal(t, "system", system["role"])
	assert.Equal(t, DefaultSystemPrompt, system["content"])
	assert.Equal(t, "user", user["role"])
	assert.Equal(t, "Original title: Never Gonna Give You Up", user["content"])
}

func TestTitleVariationsToleratesWrappedOutput(t *testing.T) {
	content := "Here are your titles:\n```json\n{\"casual\":\"Z\",\"formal\":{\"title\":\"W\"}}\n```"
	srv, _ := newChatStub(t, http.StatusOK, chatCompletion(content))

	variations, err := newTestAI(srv.URL, nil).TitleVariations(context.Background(), "Title", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, []TitleVariation{{Tone: "casual", Title: "Z"}, {Tone: "formal", Title: "W"}}, variations)
}

func TestTitleVariationsParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"prose only", "I cannot rewrite this title.", ErrUnparsableModelResponse},
		{"no titles", `{"variations":[{"tone":"casual"}]}`, ErrNoUsableVariations},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newChatStub(t, http.StatusOK, chatCompletion(tt.content))

			_, err := newTestAI(srv.URL, nil).TitleVariations(context.Background(), "Title", "sk-test")
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)

			var appErr *Error
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, tt.content, appErr.Excerpt)
		})
	}
}

func TestTitleVariationsNoChoices(t *testing.T) {
	srv, _ := newChatStub(t, http.StatusOK, `{"id":"x","object":"chat.completion","created":0,"model":"gpt-4o-mini","choices":[]}`)

	_, err := newTestAI(srv.URL, nil).TitleVariations(context.Background(), "Title", "sk-test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamError)
}

func TestTitleVariationsErrors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantKind    ErrorKind
		wantMessage string
	}{
		{
			name:     "invalid key",
			status:   http.StatusUnauthorized,
			body:     `{"error":{"message":"Incorrect API key provided","type":"invalid_request_error","code":"invalid_api_key"}}`,
			wantKind: KindInvalidOrExhaustedCredential,
		},
		{
			name:     "forbidden",
			status:   http.StatusForbidden,
			body:     `{"error":{"message":"Country not supported","type":"request_forbidden","code":"unsupported_country_region_territory"}}`,
			wantKind: KindInvalidOrExhaustedCredential,
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"Rate limit reached","type":"requests","code":"rate_limit_exceeded"}}`,
			wantKind: KindRateLimited,
		},
		{
			name:     "quota exhausted",
			status:   http.StatusTooManyRequests,
			body:     `{"error":{"message":"You exceeded your current quota","type":"insufficient_quota","code":"insufficient_quota"}}`,
			wantKind: KindInvalidOrExhaustedCredential,
		},
		{
			name:        "server error keeps the remote message",
			status:      http.StatusInternalServerError,
			body:        `{"error":{"message":"The server had an error","type":"server_error","code":null}}`,
			wantKind:    KindUpstreamError,
			wantMessage: "The server had an error",
		},
		{
			name:        "bad request without message",
			status:      http.StatusBadRequest,
			body:        `{"error":{"type":"invalid_request_error"}}`,
			wantKind:    KindUpstreamError,
			wantMessage: "OpenAI request failed (status 400)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, stub := newChatStub(t, tt.status, tt.body)

			_, err := newTestAI(srv.URL, nil).TitleVariations(context.Background(), "Title", "sk-test")
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, KindOf(err))
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, err.Error())
			}
			assert.Len(t, stub.all(), 1, "failed requests must not be retried")
		})
	}
}

func TestTitleVariationsMissingKey(t *testing.T) {
	srv, stub := newChatStub(t, http.StatusOK, chatCompletion(`[]`))

	_, err := newTestAI(srv.URL, nil).TitleVariations(context.Background(), "Title", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Empty(t, stub.all())
}

func TestTitleVariationsNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	_, err := newTestAI(baseURL, nil).TitleVariations(context.Background(), "Title", "sk-test")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNetworkFailure)
}

func TestTitleVariationsCustomPrompt(t *testing.T) {
	srv, stub := newChatStub(t, http.StatusOK, chatCompletion(`[{"tone":"pirate","title":"Arr"}]`))

	ai := newTestAI(srv.URL, nil)
	ai.SetPromptManager(NewPromptManager("Rewrite the title like a pirate. Reply with JSON."))

	variations, err := ai.TitleVariations(context.Background(), "Title", "sk-test")
	require.NoError(t, err)
	assert.Equal(t, []TitleVariation{{Tone: "pirate", Title: "Arr"}}, variations)

	messages := stub.all()[0].Body["messages"].([]any)
	assert.Equal(t, "Rewrite the title like a pirate. Reply with JSON.", messages[0].(map[string]any)["content"])
}
