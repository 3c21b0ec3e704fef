// Package ai talks to the generative model that plays the conversation
// partner, scores finished sessions and writes study material.
package ai

import (
	"context"
	"encoding/json"
)

// Provider sends one request to a generative model.
type Provider interface {
	// Generate returns the model output. When req.Schema is set the
	// response Content holds JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

type Request struct {
	System      string
	Messages    []Message
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Schema is a JSON Schema the model output must satisfy. Name keys the
// compiled-schema cache and must be unique per definition.
type Schema struct {
	Name       string
	Definition map[string]any
}

type Response struct {
	// Text is the raw model output.
	Text string
	// Content is the extracted JSON object when a schema was requested.
	Content json.RawMessage
	Model   string
	Usage   Usage
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
