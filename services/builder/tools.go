package builder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsagrahari23/webagentic/models"
	"github.com/fsagrahari23/webagentic/services/policy"
	"github.com/fsagrahari23/webagentic/services/project"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
)

const (
	commandTimeout = 30 * time.Second
	maxOutputSize  = 30000
	maxFileSize    = 1 << 20 // 1 MiB write ceiling
)

// BuilderTool is one action the model may request. Call never returns an
// error: every failure is captured in the result so one bad action cannot
// abort the rest of the batch. The project directory is passed per call, so
// concurrent builds never share state.
type BuilderTool interface {
	Name() string
	Description() string
	Call(ctx context.Context, projectDir string, input string) models.ToolResult
	GetAnthropicToolSpec() anthropic.ToolInputSchemaParam
}

func generateAnthropicSchema[T any]() anthropic.ToolInputSchemaParam {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	var v T
	schema := reflector.Reflect(v)

	return anthropic.ToolInputSchemaParam{
		Properties: schema.Properties,
	}
}

type ExecuteCommandInput struct {
	Command string `json:"command" jsonschema:"required,description=The shell command to run inside the project directory"`
}

type ExecuteCommandTool struct{}

func (e ExecuteCommandTool) Name() string {
	return "execute_command"
}

func (e ExecuteCommandTool) Description() string {
	return "Executes an allowed shell command inside the project directory. Only benign file and text utilities (mkdir, touch, echo, ls, cat, cp, mv, rm, find, grep, head, tail, wc, sort, pwd) are permitted."
}

func (e ExecuteCommandTool) Call(ctx context.Context, projectDir string, input string) models.ToolResult {
	var params ExecuteCommandInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return models.ToolResult{Success: false, Error: fmt.Sprintf("failed to parse execute command input: %v", err)}
	}

	if err := policy.ValidateCommand(params.Command); err != nil {
		return models.ToolResult{Success: false, Command: params.Command, Error: fmt.Sprintf("command rejected: %v", err)}
	}

	cctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(cctx, "sh", "-c", params.Command)
	cmd.Dir = projectDir

	var outBuf, errBuf bytes.Buffer
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()

	if cctx.Err() == context.DeadlineExceeded {
		return models.ToolResult{Success: false, Command: params.Command, Error: fmt.Sprintf("command timed out after %s", commandTimeout)}
	}

	if err != nil {
		return models.ToolResult{
			Success: false,
			Command: params.Command,
			Error:   fmt.Sprintf("command failed: %v: %s", err, limitOutput(strings.TrimSpace(errBuf.String()))),
		}
	}

	return models.ToolResult{
		Success: true,
		Command: params.Command,
		Output:  limitOutput(strings.TrimSpace(outBuf.String())),
	}
}

func (e ExecuteCommandTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ExecuteCommandInput]()
}

func limitOutput(output string) string {
	if len(output) > maxOutputSize {
		return output[:maxOutputSize] + "\n\n[Output truncated: exceeded 30,000 character limit]"
	}
	return output
}

type WriteFileInput struct {
	Path    string `json:"path" jsonschema:"required,description=Path of the file to write, relative to the project root"`
	Content string `json:"content" jsonschema:"required,description=Full content to write to the file"`
}

type WriteFileTool struct{}

func (w WriteFileTool) Name() string {
	return "write_file"
}

func (w WriteFileTool) Description() string {
	return "Writes a file inside the project directory, creating parent directories as needed and overwriting any existing file. Content is limited to 1 MiB."
}

func (w WriteFileTool) Call(ctx context.Context, projectDir string, input string) models.ToolResult {
	var params WriteFileInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return models.ToolResult{Success: false, Error: fmt.Sprintf("failed to parse write file input: %v", err)}
	}

	if len(params.Content) > maxFileSize {
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("content exceeds the %d byte limit", maxFileSize)}
	}

	target, err := project.Resolve(projectDir, params.Path)
	if err != nil {
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("path rejected: %v", err)}
	}

	if dir := filepath.Dir(target); dir != projectDir {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("failed to create parent directories: %v", err)}
		}
	}

	if err := os.WriteFile(target, []byte(params.Content), 0644); err != nil {
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("failed to write file: %v", err)}
	}

	return models.ToolResult{Success: true, Path: params.Path, BytesWritten: len(params.Content)}
}

func (w WriteFileTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[WriteFileInput]()
}

type ReadFileInput struct {
	Path string `json:"path" jsonschema:"required,description=Path of the file to read, relative to the project root"`
}

type ReadFileTool struct{}

func (r ReadFileTool) Name() string {
	return "read_file"
}

func (r ReadFileTool) Description() string {
	return "Reads the full text content of a file inside the project directory."
}

func (r ReadFileTool) Call(ctx context.Context, projectDir string, input string) models.ToolResult {
	var params ReadFileInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return models.ToolResult{Success: false, Error: fmt.Sprintf("failed to parse read file input: %v", err)}
	}

	target, err := project.Resolve(projectDir, params.Path)
	if err != nil {
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("path rejected: %v", err)}
	}

	content, err := os.ReadFile(target)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("file not found: %s", params.Path)}
		}
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("failed to read file: %v", err)}
	}

	return models.ToolResult{Success: true, Path: params.Path, Content: string(content), Size: len(content)}
}

func (r ReadFileTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ReadFileInput]()
}

type ListDirectoryInput struct {
	Path string `json:"path,omitempty" jsonschema:"description=Directory to list, relative to the project root (default: project root)"`
}

type ListDirectoryTool struct{}

func (l ListDirectoryTool) Name() string {
	return "list_directory"
}

func (l ListDirectoryTool) Description() string {
	return "Lists files and directories inside the project directory."
}

func (l ListDirectoryTool) Call(ctx context.Context, projectDir string, input string) models.ToolResult {
	var params ListDirectoryInput
	if err := json.Unmarshal([]byte(input), &params); err != nil {
		return models.ToolResult{Success: false, Error: fmt.Sprintf("failed to parse list directory input: %v", err)}
	}

	target := projectDir
	if params.Path != "" {
		resolved, err := project.Resolve(projectDir, params.Path)
		if err != nil {
			return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("path rejected: %v", err)}
		}
		target = resolved
	}

	info, err := os.Stat(target)
	if err != nil {
		if os.IsNotExist(err) {
			return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("directory not found: %s", params.Path)}
		}
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("failed to stat directory: %v", err)}
	}
	if !info.IsDir() {
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("not a directory: %s", params.Path)}
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return models.ToolResult{Success: false, Path: params.Path, Error: fmt.Sprintf("failed to read directory: %v", err)}
	}

	files := lo.Map(entries, func(e os.DirEntry, _ int) models.FileEntry {
		entryType := "file"
		if e.IsDir() {
			entryType = "directory"
		}
		return models.FileEntry{
			Name: e.Name(),
			Type: entryType,
			Path: e.Name(),
		}
	})

	return models.ToolResult{Success: true, Path: params.Path, Files: files}
}

func (l ListDirectoryTool) GetAnthropicToolSpec() anthropic.ToolInputSchemaParam {
	return generateAnthropicSchema[ListDirectoryInput]()
}
