package gemini

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/hr-scout/internal/talent"
)

type generateCall struct {
	model    string
	contents []*genai.Content
	config   *genai.GenerateContentConfig
}

type fakeModels struct {
	resp  *genai.GenerateContentResponse
	err   error
	calls []generateCall
}

func (f *fakeModels) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.calls = append(f.calls, generateCall{model: model, contents: contents, config: config})
	return f.resp, f.err
}

func textResponse(parts ...string) *genai.GenerateContentResponse {
	content := &genai.Content{}
	for _, p := range parts {
		content.Parts = append(content.Parts, &genai.Part{Text: p})
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: content}},
	}
}

func TestGeneratorCompleteSendsConfig(t *testing.T) {
	models := &fakeModels{resp: textResponse(`{"candidates":`, `[]}`)}
	g := &Generator{models: models, model: "gemini-pro", logger: zap.NewNop()}

	out, err := g.Complete(context.Background(), "system", "message")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if out != "{\"candidates\":\n[]}" {
		t.Fatalf("unexpected output: %q", out)
	}

	if len(models.calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(models.calls))
	}

	call := models.calls[0]
	if call.model != "gemini-pro" {
		t.Fatalf("unexpected model: %s", call.model)
	}
	if call.config == nil || call.config.SystemInstruction == nil {
		t.Fatalf("expected system instruction to be set")
	}
	if got := call.config.SystemInstruction.Parts[0].Text; got != "system" {
		t.Fatalf("unexpected system instruction: %q", got)
	}
	if call.config.Temperature == nil || *call.config.Temperature != 0.3 {
		t.Fatalf("unexpected temperature: %v", call.config.Temperature)
	}
	if call.config.ResponseMIMEType != "application/json" {
		t.Fatalf("unexpected mime type: %q", call.config.ResponseMIMEType)
	}
	if len(call.contents) != 1 || call.contents[0].Parts[0].Text != "message" {
		t.Fatalf("unexpected contents: %+v", call.contents)
	}
}

func TestGeneratorConvertsAPIError(t *testing.T) {
	models := &fakeModels{err: genai.APIError{Code: http.StatusTooManyRequests, Status: "RESOURCE_EXHAUSTED", Message: "quota exhausted"}}
	g := &Generator{models: models, model: "gemini-pro", logger: zap.NewNop()}

	_, err := g.Complete(context.Background(), "sys", "msg")

	var apiErr *talent.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected talent.APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests || apiErr.Message != "quota exhausted" || apiErr.Service != talent.ServiceGemini {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}
}

func TestGeneratorEmptyResponseIsNotAnError(t *testing.T) {
	g := &Generator{models: &fakeModels{resp: &genai.GenerateContentResponse{}}, model: "m", logger: zap.NewNop()}

	out, err := g.Complete(context.Background(), "", "msg")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGenerator(context.Background(), zap.NewNop(), " ", ""); err == nil {
		t.Fatal("expected error for empty api key")
	}
}
