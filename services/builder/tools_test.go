package builder

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fsagrahari23/webagentic/models"
)

func callTool(t *testing.T, tool BuilderTool, projectDir string, input any) models.ToolResult {
	t.Helper()

	raw, err := json.Marshal(input)
	if err != nil {
		t.Fatalf("failed to marshal tool input: %v", err)
	}
	return tool.Call(context.Background(), projectDir, string(raw))
}

func TestWriteFileSizeCeiling(t *testing.T) {
	dir := t.TempDir()
	tool := WriteFileTool{}

	atLimit := callTool(t, tool, dir, WriteFileInput{Path: "big.txt", Content: strings.Repeat("a", maxFileSize)})
	if !atLimit.Success {
		t.Errorf("write of exactly %d bytes failed: %s", maxFileSize, atLimit.Error)
	}
	if atLimit.BytesWritten != maxFileSize {
		t.Errorf("bytesWritten = %d, want %d", atLimit.BytesWritten, maxFileSize)
	}

	overLimit := callTool(t, tool, dir, WriteFileInput{Path: "toobig.txt", Content: strings.Repeat("a", maxFileSize+1)})
	if overLimit.Success {
		t.Error("write of one byte over the ceiling succeeded")
	}
	if _, err := os.Stat(filepath.Join(dir, "toobig.txt")); !os.IsNotExist(err) {
		t.Error("oversized file was created anyway")
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	dir := t.TempDir()

	result := callTool(t, WriteFileTool{}, dir, WriteFileInput{Path: "css/deep/style.css", Content: "body {}"})
	if !result.Success {
		t.Fatalf("write failed: %s", result.Error)
	}

	content, err := os.ReadFile(filepath.Join(dir, "css", "deep", "style.css"))
	if err != nil {
		t.Fatalf("written file missing: %v", err)
	}
	if string(content) != "body {}" {
		t.Errorf("unexpected file content: %q", content)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	tool := WriteFileTool{}

	callTool(t, tool, dir, WriteFileInput{Path: "index.html", Content: "old"})
	result := callTool(t, tool, dir, WriteFileInput{Path: "index.html", Content: "new"})
	if !result.Success {
		t.Fatalf("overwrite failed: %s", result.Error)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "index.html"))
	if string(content) != "new" {
		t.Errorf("file not overwritten, got %q", content)
	}
}

func TestWriteFileRejectsEscapingPaths(t *testing.T) {
	parent := t.TempDir()
	dir := filepath.Join(parent, "proj")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{"../escape.html", "/tmp/escape.html", "a/../../escape.html"} {
		result := callTool(t, WriteFileTool{}, dir, WriteFileInput{Path: path, Content: "x"})
		if result.Success {
			t.Errorf("write with path %q succeeded", path)
		}
	}

	if _, err := os.Stat(filepath.Join(parent, "escape.html")); !os.IsNotExist(err) {
		t.Error("a rejected write escaped the project directory")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	missing := callTool(t, ReadFileTool{}, dir, ReadFileInput{Path: "nope.html"})
	if missing.Success {
		t.Error("read of missing file succeeded")
	}
	if !strings.Contains(missing.Error, "not found") {
		t.Errorf("missing-file error %q does not carry a not-found kind", missing.Error)
	}

	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("<!DOCTYPE html>"), 0644); err != nil {
		t.Fatal(err)
	}

	result := callTool(t, ReadFileTool{}, dir, ReadFileInput{Path: "index.html"})
	if !result.Success {
		t.Fatalf("read failed: %s", result.Error)
	}
	if result.Content != "<!DOCTYPE html>" {
		t.Errorf("unexpected content: %q", result.Content)
	}
	if result.Size != len("<!DOCTYPE html>") {
		t.Errorf("size = %d, want %d", result.Size, len("<!DOCTYPE html>"))
	}
}

func TestListDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(filepath.Join(dir, "css"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	result := callTool(t, ListDirectoryTool{}, dir, ListDirectoryInput{})
	if !result.Success {
		t.Fatalf("list failed: %s", result.Error)
	}
	if len(result.Files) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(result.Files))
	}

	types := map[string]string{}
	for _, f := range result.Files {
		types[f.Name] = f.Type
	}
	if types["css"] != "directory" {
		t.Errorf("css entry type = %q, want directory", types["css"])
	}
	if types["index.html"] != "file" {
		t.Errorf("index.html entry type = %q, want file", types["index.html"])
	}

	missing := callTool(t, ListDirectoryTool{}, dir, ListDirectoryInput{Path: "nope"})
	if missing.Success {
		t.Error("list of missing directory succeeded")
	}

	notDir := callTool(t, ListDirectoryTool{}, dir, ListDirectoryInput{Path: "index.html"})
	if notDir.Success {
		t.Error("list of a regular file succeeded")
	}
}

func TestExecuteCommand(t *testing.T) {
	dir := t.TempDir()
	tool := ExecuteCommandTool{}

	echo := callTool(t, tool, dir, ExecuteCommandInput{Command: "echo hello"})
	if !echo.Success {
		t.Fatalf("echo failed: %s", echo.Error)
	}
	if echo.Output != "hello" {
		t.Errorf("echo output = %q, want hello", echo.Output)
	}

	mkdir := callTool(t, tool, dir, ExecuteCommandInput{Command: "mkdir assets"})
	if !mkdir.Success {
		t.Fatalf("mkdir failed: %s", mkdir.Error)
	}
	if info, err := os.Stat(filepath.Join(dir, "assets")); err != nil || !info.IsDir() {
		t.Error("mkdir did not create the directory inside the project")
	}

	blocked := callTool(t, tool, dir, ExecuteCommandInput{Command: "curl http://evil.example"})
	if blocked.Success {
		t.Error("blocked command executed")
	}
	if !strings.Contains(blocked.Error, "blocked") {
		t.Errorf("blocked-command error %q does not name the rejection", blocked.Error)
	}

	unknown := callTool(t, tool, dir, ExecuteCommandInput{Command: "python3 -m http.server"})
	if unknown.Success {
		t.Error("unknown command executed")
	}

	failing := callTool(t, tool, dir, ExecuteCommandInput{Command: "cat does-not-exist.html"})
	if failing.Success {
		t.Error("failing command reported success")
	}
}

func TestLimitOutput(t *testing.T) {
	long := strings.Repeat("x", maxOutputSize+100)
	limited := limitOutput(long)
	if len(limited) >= len(long) {
		t.Error("oversized output not truncated")
	}
	if !strings.Contains(limited, "truncated") {
		t.Error("truncated output missing marker")
	}

	short := "fine"
	if limitOutput(short) != short {
		t.Error("short output was modified")
	}
}
