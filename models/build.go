package models

type BuildRequest struct {
	UserPrompt string `json:"userPrompt"`
}

// ToolResult is the outcome of one executed (or rejected) tool call. Only the
// fields relevant to the tool that produced it are populated.
type ToolResult struct {
	Success      bool        `json:"success"`
	Command      string      `json:"command,omitempty"`
	Path         string      `json:"path,omitempty"`
	Output       string      `json:"output,omitempty"`
	Content      string      `json:"content,omitempty"`
	Files        []FileEntry `json:"files,omitempty"`
	BytesWritten int         `json:"bytesWritten,omitempty"`
	Size         int         `json:"size,omitempty"`
	Error        string      `json:"error,omitempty"`
}

type FileEntry struct {
	Name string `json:"name"`
	Type string `json:"type"`
	Path string `json:"path"`
}

type ExecutionResult struct {
	Tool   string                 `json:"tool"`
	Args   map[string]interface{} `json:"args"`
	Result ToolResult             `json:"result"`
}

type BuildStats struct {
	ToolCallsExecuted int    `json:"toolCallsExecuted"`
	ExecutionTime     string `json:"executionTime"`
	Timestamp         string `json:"timestamp"`
	HasIndexFile      bool   `json:"hasIndexFile"`
}

type BuildResponse struct {
	Success          bool              `json:"success"`
	Message          string            `json:"message"`
	ProjectID        string            `json:"projectId"`
	PreviewURL       *string           `json:"previewUrl"`
	ExecutionResults []ExecutionResult `json:"executionResults"`
	Stats            BuildStats        `json:"stats"`
}

type WebsiteInfo struct {
	ProjectID  string `json:"projectId"`
	PreviewURL string `json:"previewUrl"`
	CreatedAt  string `json:"createdAt"`
	ModifiedAt string `json:"modifiedAt"`
}

type WebsiteListResponse struct {
	Success  bool          `json:"success"`
	Websites []WebsiteInfo `json:"websites"`
	Count    int           `json:"count"`
}
