package chatbot

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"grant-advisor-be/pkg/llm"
)

func newTestChatbot(serverURL string) *GeminiChatbot {
	g := NewGeminiChatbot("test-key", "gemini-2.5-flash")
	g.baseURL = serverURL
	return g
}

func TestChat(t *testing.T) {
	var gotRequest GeminiChatRequest
	var gotKey, gotPath string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-goog-api-key")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotRequest); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(&GeminiChatResponse{
			Candidates: []*GeminiChatCandidate{
				{Content: &GeminiChatContent{Parts: []*GeminiChatPart{{Text: "回答"}, {Text: "です"}}}},
			},
		})
	}))
	defer server.Close()

	g := newTestChatbot(server.URL)
	got, err := g.Chat(context.Background(), "システム指示", []llm.Message{
		{Role: "user", Content: "質問"},
		{Role: "assistant", Content: "回答"},
		{Role: "user", Content: "続き"},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if got != "回答です" {
		t.Errorf("reply = %q, want concatenated candidate parts", got)
	}
	if gotKey != "test-key" {
		t.Errorf("api key header = %q", gotKey)
	}
	if !strings.HasSuffix(gotPath, "/models/gemini-2.5-flash:generateContent") {
		t.Errorf("path = %q", gotPath)
	}
	if gotRequest.SystemInstruction == nil || gotRequest.SystemInstruction.Parts[0].Text != "システム指示" {
		t.Error("system instruction missing from payload")
	}
	wantRoles := []string{"user", "model", "user"}
	if len(gotRequest.Contents) != len(wantRoles) {
		t.Fatalf("content count = %d, want %d", len(gotRequest.Contents), len(wantRoles))
	}
	for i, want := range wantRoles {
		if gotRequest.Contents[i].Role != want {
			t.Errorf("content[%d].Role = %q, want %q (assistant maps to model)", i, gotRequest.Contents[i].Role, want)
		}
	}
}

func TestChatModelOverride(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewEncoder(w).Encode(&GeminiChatResponse{
			Candidates: []*GeminiChatCandidate{
				{Content: &GeminiChatContent{Parts: []*GeminiChatPart{{Text: "ok"}}}},
			},
		})
	}))
	defer server.Close()

	g := newTestChatbot(server.URL)
	if _, err := g.Chat(context.Background(), "", nil, llm.WithModel("gemini-2.5-pro")); err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if !strings.Contains(gotPath, "gemini-2.5-pro") {
		t.Errorf("path = %q, want the overridden model", gotPath)
	}
}

func TestChatStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer server.Close()

	g := newTestChatbot(server.URL)
	_, err := g.Chat(context.Background(), "", []llm.Message{{Role: "user", Content: "質問"}})
	if err == nil {
		t.Fatal("non-200 response must fail")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not carry the status code", err)
	}
}

func TestChatStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":streamGenerateContent") {
			t.Errorf("path = %q", r.URL.Path)
		}
		if r.URL.Query().Get("alt") != "sse" {
			t.Errorf("alt = %q, want sse", r.URL.Query().Get("alt"))
		}
		w.Header().Set("Content-Type", "text/event-stream")
		frame := func(text string) string {
			b, _ := json.Marshal(&GeminiChatResponse{
				Candidates: []*GeminiChatCandidate{
					{Content: &GeminiChatContent{Parts: []*GeminiChatPart{{Text: text}}}},
				},
			})
			return "data: " + string(b) + "\n\n"
		}
		fmt.Fprint(w, frame("断片1"))
		fmt.Fprint(w, "data: {malformed\n\n") // keep-alive noise is skipped
		fmt.Fprint(w, ": comment line\n\n")
		fmt.Fprint(w, frame("断片2"))
	}))
	defer server.Close()

	g := newTestChatbot(server.URL)
	fragments, errs := g.ChatStream(context.Background(), "システム", []llm.Message{{Role: "user", Content: "質問"}})

	var got []string
	for fragment := range fragments {
		got = append(got, fragment)
	}
	if err := <-errs; err != nil {
		t.Fatalf("stream error: %v", err)
	}

	want := []string{"断片1", "断片2"}
	if len(got) != len(want) {
		t.Fatalf("fragments = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fragment[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestChatStreamStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	g := newTestChatbot(server.URL)
	fragments, errs := g.ChatStream(context.Background(), "", []llm.Message{{Role: "user", Content: "質問"}})

	for range fragments {
		t.Error("no fragments expected on a failed request")
	}
	if err := <-errs; err == nil {
		t.Fatal("non-200 stream response must fail")
	}
}

func TestMissingAPIKey(t *testing.T) {
	g := NewGeminiChatbot("", "gemini-2.5-flash")

	if _, err := g.Chat(context.Background(), "", nil); err == nil {
		t.Error("Chat without an API key must fail")
	}

	fragments, errs := g.ChatStream(context.Background(), "", nil)
	for range fragments {
	}
	if err := <-errs; err == nil {
		t.Error("ChatStream without an API key must fail")
	}
}
