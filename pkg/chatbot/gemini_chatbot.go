package chatbot

import (
	"bufio"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"grant-advisor-be/internal/constant"
	"grant-advisor-be/pkg/llm"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type GeminiChatPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"` // base64
}

type GeminiChatContent struct {
	Parts []*GeminiChatPart `json:"parts"`
	Role  string            `json:"role,omitempty"`
}

type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature,omitempty"`
	MaxOutputTokens int     `json:"maxOutputTokens,omitempty"`
}

type GeminiChatRequest struct {
	Contents          []*GeminiChatContent    `json:"contents"`
	SystemInstruction *GeminiChatContent      `json:"system_instruction,omitempty"`
	GenerationConfig  *GeminiGenerationConfig `json:"generationConfig,omitempty"`
}

type GeminiChatCandidate struct {
	Content *GeminiChatContent `json:"content"`
}

type GeminiChatResponse struct {
	Candidates []*GeminiChatCandidate `json:"candidates"`
}

// GeminiChatbot talks to the Gemini REST API. It implements
// llm.LLMProvider for both single-shot and streaming generation.
type GeminiChatbot struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGeminiChatbot(apiKey, model string) *GeminiChatbot {
	return &GeminiChatbot{
		apiKey:     apiKey,
		model:      model,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
}

// checkConfigured guards every call: without a key the service can never
// succeed, so fail each request with an actionable message instead of
// crashing at startup.
func (g *GeminiChatbot) checkConfigured() error {
	if g.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is not configured; set it in the environment or .env file")
	}
	return nil
}

func (g *GeminiChatbot) resolveModel(options []llm.Option) string {
	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}
	if opts.Model != "" {
		return opts.Model
	}
	return g.model
}

// toGeminiContents maps provider-agnostic exchanges to the wire format.
// Gemini calls the assistant role "model".
func toGeminiContents(history []llm.Message) []*GeminiChatContent {
	contents := make([]*GeminiChatContent, 0, len(history))
	for _, msg := range history {
		role := constant.ChatMessageRoleUser
		if msg.Role == constant.ChatMessageRoleAssistant {
			role = constant.ChatMessageRoleModel
		}
		contents = append(contents, &GeminiChatContent{
			Parts: []*GeminiChatPart{{Text: msg.Content}},
			Role:  role,
		})
	}
	return contents
}

func (g *GeminiChatbot) Chat(ctx context.Context, system string, history []llm.Message, options ...llm.Option) (string, error) {
	if err := g.checkConfigured(); err != nil {
		return "", err
	}
	payload := &GeminiChatRequest{
		Contents: toGeminiContents(history),
	}
	if system != "" {
		payload.SystemInstruction = &GeminiChatContent{
			Parts: []*GeminiChatPart{{Text: system}},
		}
	}
	return g.generate(ctx, g.resolveModel(options), payload)
}

func (g *GeminiChatbot) GenerateWithBlob(ctx context.Context, system, mimeType string, blob []byte, instruction string, options ...llm.Option) (string, error) {
	if err := g.checkConfigured(); err != nil {
		return "", err
	}
	payload := &GeminiChatRequest{
		Contents: []*GeminiChatContent{
			{
				Role: constant.ChatMessageRoleUser,
				Parts: []*GeminiChatPart{
					{InlineData: &GeminiInlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(blob),
					}},
					{Text: instruction},
				},
			},
		},
	}
	if system != "" {
		payload.SystemInstruction = &GeminiChatContent{
			Parts: []*GeminiChatPart{{Text: system}},
		}
	}
	return g.generate(ctx, g.resolveModel(options), payload)
}

func (g *GeminiChatbot) generate(ctx context.Context, model string, payload *GeminiChatRequest) (string, error) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", g.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := g.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	var geminiRes GeminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}
	return extractText(&geminiRes)
}

// ChatStream opens one streaming request and forwards text fragments in
// arrival order. Server-sent events are parsed line by line; each data
// line carries a partial GeminiChatResponse.
func (g *GeminiChatbot) ChatStream(ctx context.Context, system string, history []llm.Message, options ...llm.Option) (<-chan string, <-chan error) {
	fragmentChan := make(chan string, 16)
	errorChan := make(chan error, 1)

	go func() {
		defer close(fragmentChan)
		defer close(errorChan)

		if err := g.checkConfigured(); err != nil {
			errorChan <- err
			return
		}

		payload := &GeminiChatRequest{
			Contents: toGeminiContents(history),
		}
		if system != "" {
			payload.SystemInstruction = &GeminiChatContent{
				Parts: []*GeminiChatPart{{Text: system}},
			}
		}
		payloadJson, err := json.Marshal(payload)
		if err != nil {
			errorChan <- err
			return
		}

		url := fmt.Sprintf("%s/models/%s:streamGenerateContent?alt=sse", g.baseURL, g.resolveModel(options))
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payloadJson))
		if err != nil {
			errorChan <- err
			return
		}
		req.Header.Set("x-goog-api-key", g.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")

		res, err := g.httpClient.Do(req)
		if err != nil {
			errorChan <- err
			return
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			resBody, _ := io.ReadAll(res.Body)
			errorChan <- fmt.Errorf(
				"status error, got status %d. with response body %s",
				res.StatusCode,
				string(resBody),
			)
			return
		}

		scanner := bufio.NewScanner(res.Body)
		scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for scanner.Scan() {
			line := scanner.Text()
			if !strings.HasPrefix(line, "data: ") {
				continue
			}
			data := strings.TrimPrefix(line, "data: ")
			if data == "[DONE]" {
				break
			}

			var chunk GeminiChatResponse
			if err := json.Unmarshal([]byte(data), &chunk); err != nil {
				// Skip malformed keep-alive frames
				continue
			}
			text, err := extractText(&chunk)
			if err != nil {
				continue
			}
			if text != "" {
				select {
				case fragmentChan <- text:
				case <-ctx.Done():
					errorChan <- ctx.Err()
					return
				}
			}
		}
		if err := scanner.Err(); err != nil {
			errorChan <- err
		}
	}()

	return fragmentChan, errorChan
}

func extractText(res *GeminiChatResponse) (string, error) {
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty candidates in response")
	}
	var sb strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		sb.WriteString(part.Text)
	}
	return sb.String(), nil
}
