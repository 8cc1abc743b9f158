// Package builder orchestrates one website build: it asks the model to plan
// a batch of file-system actions, validates and executes each one against a
// freshly created project directory, and aggregates the results.
package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/fsagrahari23/webagentic/models"
	"github.com/fsagrahari23/webagentic/services/project"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// MaxPromptLength bounds the user prompt accepted by a build request.
const MaxPromptLength = 2000

// ValidationError marks a bad user input (prompt too long, empty, ...).
// Handlers map it to a 400 instead of a 500.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ModelClient is the single model operation the orchestrator needs. The real
// Anthropic client satisfies it through anthropicClient; tests substitute a
// stub.
type ModelClient interface {
	CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error)
}

type anthropicClient struct {
	client *anthropic.Client
}

func (a *anthropicClient) CreateMessage(ctx context.Context, params anthropic.MessageNewParams) (*anthropic.Message, error) {
	return a.client.Messages.New(ctx, params)
}

type Service struct {
	model ModelClient
	store *project.Store
	tools []BuilderTool
}

func NewService(anthropicAPIKey string, store *project.Store) (*Service, error) {
	client := anthropic.NewClient(option.WithAPIKey(anthropicAPIKey))
	return NewServiceWithModel(&anthropicClient{client: &client}, store), nil
}

func NewServiceWithModel(model ModelClient, store *project.Store) *Service {
	return &Service{
		model: model,
		store: store,
		tools: []BuilderTool{
			ExecuteCommandTool{},
			WriteFileTool{},
			ReadFileTool{},
			ListDirectoryTool{},
		},
	}
}

// ProcessBuild runs one build request end to end. The project directory it
// creates is threaded through every tool call, so concurrent builds stay
// fully isolated from each other.
func (s *Service) ProcessBuild(ctx context.Context, userPrompt string) (*models.BuildResponse, error) {
	start := time.Now()

	prompt := strings.TrimSpace(userPrompt)
	if prompt == "" {
		return nil, &ValidationError{Message: "userPrompt is required"}
	}
	if len(prompt) > MaxPromptLength {
		return nil, &ValidationError{Message: fmt.Sprintf("userPrompt exceeds the %d character limit", MaxPromptLength)}
	}

	projectID, projectDir, err := s.store.CreateProject()
	if err != nil {
		return nil, err
	}

	log.Printf("[INFO] Starting build %s for prompt (%d chars)", projectID, len(prompt))

	toolSpecs := s.buildAnthropicToolSpecs()
	messages := []anthropic.MessageParam{
		anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
	}

	response, err := s.model.CreateMessage(ctx, anthropic.MessageNewParams{
		Model:     anthropic.ModelClaude4Sonnet20250514,
		MaxTokens: 4096,
		System:    []anthropic.TextBlockParam{{Text: BuilderSystemPrompt}},
		Messages:  messages,
		Tools:     toolSpecs,
	})
	if err != nil {
		log.Printf("[ERROR] Failed to call Anthropic API for build %s: %v", projectID, err)
		return nil, fmt.Errorf("failed to call Anthropic API: %v", err)
	}

	messages = append(messages, response.ToParam())

	toolUses := []anthropic.ToolUseBlock{}
	planMessage := strings.Builder{}

	for _, block := range response.Content {
		switch block := block.AsAny().(type) {
		case anthropic.TextBlock:
			planMessage.WriteString(block.Text)
		case anthropic.ToolUseBlock:
			toolUses = append(toolUses, block)
		}
	}

	log.Printf("[INFO] Build %s: model requested %d tool calls", projectID, len(toolUses))

	executionResults := []models.ExecutionResult{}
	toolResultBlocks := []anthropic.ContentBlockParamUnion{}

	for _, toolUse := range toolUses {
		inputJSON, _ := json.Marshal(toolUse.Input)

		var argsMap map[string]interface{}
		json.Unmarshal(inputJSON, &argsMap)

		result := s.executeTool(ctx, projectDir, toolUse.Name, string(inputJSON))
		if result.Success {
			log.Printf("[INFO] Build %s: %s succeeded", projectID, toolUse.Name)
		} else {
			log.Printf("[ERROR] Build %s: %s failed: %s", projectID, toolUse.Name, result.Error)
		}

		executionResults = append(executionResults, models.ExecutionResult{
			Tool:   toolUse.Name,
			Args:   argsMap,
			Result: result,
		})

		resultJSON, _ := json.Marshal(result)
		toolResultBlocks = append(toolResultBlocks, anthropic.ContentBlockParamUnion{
			OfToolResult: &anthropic.ToolResultBlockParam{
				ToolUseID: toolUse.ID,
				Content: []anthropic.ToolResultBlockParamContentUnion{
					{OfText: &anthropic.TextBlockParam{Text: string(resultJSON)}},
				},
			},
		})
	}

	finalMessage := planMessage.String()

	// One follow-up call so the model can summarize what it built. The reply
	// is narrative only: any tool calls it requests are ignored, and its
	// failure never fails the build.
	if len(toolResultBlocks) > 0 {
		messages = append(messages, anthropic.NewUserMessage(toolResultBlocks...))

		followUp, err := s.model.CreateMessage(ctx, anthropic.MessageNewParams{
			Model:     anthropic.ModelClaude4Sonnet20250514,
			MaxTokens: 1024,
			System:    []anthropic.TextBlockParam{{Text: BuilderSystemPrompt}},
			Messages:  messages,
			Tools:     toolSpecs,
		})
		if err != nil {
			log.Printf("[ERROR] Build %s: follow-up call failed: %v", projectID, err)
		} else {
			summary := strings.Builder{}
			for _, block := range followUp.Content {
				if text, ok := block.AsAny().(anthropic.TextBlock); ok {
					summary.WriteString(text.Text)
				}
			}
			if summary.Len() > 0 {
				finalMessage = summary.String()
			}
		}
	}

	if finalMessage == "" {
		finalMessage = "Website build completed."
	}

	hasIndex := s.store.HasIndexFile(projectDir)
	var previewURL *string
	if hasIndex {
		url := s.store.PreviewURL(projectID)
		previewURL = &url
	}

	log.Printf("[INFO] Build %s completed: %d tool calls, index file: %v", projectID, len(executionResults), hasIndex)

	return &models.BuildResponse{
		Success:          true,
		Message:          finalMessage,
		ProjectID:        projectID,
		PreviewURL:       previewURL,
		ExecutionResults: executionResults,
		Stats: models.BuildStats{
			ToolCallsExecuted: len(executionResults),
			ExecutionTime:     time.Since(start).Round(time.Millisecond).String(),
			Timestamp:         time.Now().UTC().Format(time.RFC3339),
			HasIndexFile:      hasIndex,
		},
	}, nil
}

func (s *Service) buildAnthropicToolSpecs() []anthropic.ToolUnionParam {
	var toolSpecs []anthropic.ToolUnionParam

	for _, tool := range s.tools {
		toolSpecs = append(toolSpecs, anthropic.ToolUnionParam{
			OfTool: &anthropic.ToolParam{
				Name:        tool.Name(),
				Description: anthropic.String(tool.Description()),
				InputSchema: tool.GetAnthropicToolSpec(),
			},
		})
	}

	return toolSpecs
}

func (s *Service) executeTool(ctx context.Context, projectDir, toolName, input string) models.ToolResult {
	for _, tool := range s.tools {
		if tool.Name() == toolName {
			return tool.Call(ctx, projectDir, input)
		}
	}
	return models.ToolResult{Success: false, Error: fmt.Sprintf("tool %s not found", toolName)}
}
