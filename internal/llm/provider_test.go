package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
)

func sampleDoc() *ir.Document {
	doc := ir.NewDocument()
	doc.Metadata = ir.Metadata{ID: "classWidget", Kind: "class", Name: "Widget"}
	return doc
}

// capture serves a canned JSON reply and records the request.
type capture struct {
	path   string
	auth   string
	body   string
	server *httptest.Server
}

func newCapture(t *testing.T, reply string) *capture {
	t.Helper()
	c := &capture{}
	c.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		c.path = r.URL.Path
		c.auth = r.Header.Get("Authorization")
		c.body = string(data)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(c.server.Close)
	return c
}

func TestAnthropicProvider_Format(t *testing.T) {
	c := newCapture(t, `{"id":"msg_1","type":"message","role":"assistant","model":"claude-test",
		"content":[{"type":"text","text":"# Widget\n\nPolished."}],
		"stop_reason":"end_turn","usage":{"input_tokens":12,"output_tokens":4}}`)

	p, _ := NewAnthropic(ProviderConfig{APIKey: "sk-test", Model: "claude-test", Endpoint: c.server.URL})
	res, err := p.Format(context.Background(), sampleDoc(), DefaultFormatOptions())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if c.path != "/v1/messages" {
		t.Errorf("unexpected path %s", c.path)
	}
	if !strings.Contains(c.body, "technical editor") || !strings.Contains(c.body, "Widget") {
		t.Errorf("request is missing the prompt or document: %s", c.body)
	}
	if res.Markdown != "# Widget\n\nPolished.\n" {
		t.Errorf("unexpected markdown %q", res.Markdown)
	}
	if res.Usage.TotalTokens != 16 || res.Model != "claude-test" {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestOpenAIProvider_Format(t *testing.T) {
	c := newCapture(t, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-test",
		"choices":[{"index":0,"message":{"role":"assistant","content":"`+"```markdown\\n# Widget\\n```"+`"},"finish_reason":"stop"}],
		"usage":{"prompt_tokens":7,"completion_tokens":3,"total_tokens":10}}`)

	p, _ := NewOpenAI(ProviderConfig{APIKey: "sk-test", Endpoint: c.server.URL + "/v1"})
	res, err := p.Format(context.Background(), sampleDoc(), DefaultFormatOptions())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	if c.path != "/v1/chat/completions" {
		t.Errorf("unexpected path %s", c.path)
	}
	if c.auth != "Bearer sk-test" {
		t.Errorf("unexpected auth header %q", c.auth)
	}
	if !strings.Contains(c.body, `"gpt-4o-mini"`) {
		t.Errorf("expected default model in request: %s", c.body)
	}
	if res.Markdown != "# Widget\n" {
		t.Errorf("expected fence stripped, got %q", res.Markdown)
	}
	if res.Usage.InputTokens != 7 || res.Usage.TotalTokens != 10 {
		t.Errorf("unexpected usage %+v", res.Usage)
	}
}

func TestOllamaProvider_Format(t *testing.T) {
	c := newCapture(t, `{"id":"c1","object":"chat.completion","created":1,"model":"llama3.2",
		"choices":[{"index":0,"message":{"role":"assistant","content":"# Widget"},"finish_reason":"stop"}]}`)

	p, _ := NewOllama(ProviderConfig{Endpoint: c.server.URL + "/"})
	if p.Name() != "ollama" {
		t.Errorf("unexpected name %s", p.Name())
	}
	if _, err := p.Format(context.Background(), sampleDoc(), DefaultFormatOptions()); err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if c.path != "/v1/chat/completions" || c.auth != "Bearer ollama" {
		t.Errorf("unexpected request %s %q", c.path, c.auth)
	}
}

func TestFormat_MissingKeyDoesNotCallOut(t *testing.T) {
	c := newCapture(t, `{}`)

	p, _ := NewOpenAI(ProviderConfig{Endpoint: c.server.URL + "/v1"})
	if _, err := p.Format(context.Background(), sampleDoc(), DefaultFormatOptions()); err == nil {
		t.Fatal("expected error")
	}
	if c.path != "" {
		t.Errorf("expected no request, got %s", c.path)
	}
}

func TestSystemPrompt(t *testing.T) {
	if got := SystemPrompt(FormatOptions{Prompt: "custom"}); got != "custom" {
		t.Errorf("expected custom prompt, got %q", got)
	}
	if got := SystemPrompt(FormatOptions{Language: "EN"}); strings.Contains(got, "language with code") {
		t.Error("english should not add a language rule")
	}
	if got := SystemPrompt(FormatOptions{Language: "de"}); !strings.Contains(got, `"de"`) {
		t.Errorf("expected language rule, got %q", got)
	}
}

func TestCleanReply(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"# Title\n", "# Title\n"},
		{"```\n# Title\n```", "# Title\n"},
		{"```md\n# Title\n```\n", "# Title\n"},
		{"```c\nint x;\n```", "```c\nint x;\n```\n"},
	}
	for _, tc := range tests {
		if got := cleanReply(tc.in); got != tc.want {
			t.Errorf("cleanReply(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
