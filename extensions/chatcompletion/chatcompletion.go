// Package chatcompletion implements a minimal OpenAI-compatible chat
// extension for Rill: `llm::complete`. No OpenAI Go client is used as
// real code anywhere in the corpus this repo draws its stack from, so
// this client is hand-written net/http + encoding/json — a deliberate
// standard-library exception recorded in DESIGN.md.
package chatcompletion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

// Extension calls a single OpenAI-compatible chat completions endpoint.
type Extension struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
}

// New builds an Extension targeting baseURL (e.g.
// "https://api.openai.com/v1") with the given API key and default
// model.
func New(baseURL, apiKey, model string) *Extension {
	return &Extension{
		baseURL: baseURL,
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Funcs declares the parameter contract for every function this
// extension exposes.
func (x *Extension) Funcs() map[string][]runtime.ParamSpec {
	return map[string][]runtime.ParamSpec{
		"complete": {
			{Name: "prompt", Type: value.TypeString, Required: true},
			{Name: "system", Type: value.TypeString, Required: false, DefaultValue: value.String("")},
		},
	}
}

// Impls returns the Go implementation for each name Funcs declares.
func (x *Extension) Impls() map[string]runtime.HostFunc {
	return map[string]runtime.HostFunc{
		"complete": x.complete,
	}
}

func (x *Extension) complete(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	prompt, ok := args[0].(value.String)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "llm::complete: prompt must be a string", loc, nil)
	}
	system, _ := args[1].(value.String)

	var messages []chatMessage
	if system != "" {
		messages = append(messages, chatMessage{Role: "system", Content: string(system)})
	}
	messages = append(messages, chatMessage{Role: "user", Content: string(prompt)})

	body, err := json.Marshal(chatRequest{Model: x.model, Messages: messages})
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("llm::complete: %v", err), loc, nil)
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, x.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("llm::complete: %v", err), loc, nil)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+x.apiKey)

	resp, err := x.client.Do(req)
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("llm::complete: %v", err), loc, nil)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("llm::complete: %v", err), loc, nil)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, rillerr.New(rillerr.AutoException, fmt.Sprintf("llm::complete: decoding response: %v", err), loc, nil)
	}
	if parsed.Error != nil {
		return nil, rillerr.New(rillerr.AutoException, "llm::complete: "+parsed.Error.Message, loc, nil)
	}
	if len(parsed.Choices) == 0 {
		return nil, rillerr.New(rillerr.AutoException, "llm::complete: empty response", loc, nil)
	}
	return value.String(parsed.Choices[0].Message.Content), nil
}
