package source

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// PermissionDenial represents a tool that the generator's permission system denied.
type PermissionDenial struct {
	Tool  string
	Input string
}

// String returns a human-readable summary of the denial.
func (d PermissionDenial) String() string {
	if d.Input != "" {
		return fmt.Sprintf("%s(%s)", d.Tool, d.Input)
	}
	return d.Tool
}

// StreamResult holds what was decoded from a stream-json event log.
type StreamResult struct {
	Text              string
	PermissionDenials []PermissionDenial
	CostUSD           float64
	SessionID         string
}

// ToolFunc is called when the generator finishes a tool call.
type ToolFunc func(name, summary string)

// streamState tracks tool use accumulation across stream events.
type streamState struct {
	toolName string
	inputBuf strings.Builder
}

// DecodeStreamJSON reads stream-json lines from r and writes every text delta
// to text in arrival order. Malformed lines are skipped. text and onTool may
// be nil.
func DecodeStreamJSON(ctx context.Context, r io.Reader, text io.Writer, onTool ToolFunc) (*StreamResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 256*1024), 1024*1024)

	var result StreamResult
	var textBuf strings.Builder
	var ss streamState
	out := io.Writer(&textBuf)
	if text != nil {
		out = io.MultiWriter(&textBuf, text)
	}

	for scanner.Scan() {
		if ctx.Err() != nil {
			return &result, ctx.Err()
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event streamEvent
		if err := json.Unmarshal(line, &event); err != nil {
			continue
		}

		switch event.Type {
		case "stream_event":
			if err := handleStreamEvent(&event, &ss, out, onTool); err != nil {
				return &result, err
			}
		case "result":
			handleResultEvent(&event, &result)
		}
	}

	if err := scanner.Err(); err != nil {
		return &result, fmt.Errorf("reading stream: %w", err)
	}

	result.Text = textBuf.String()
	return &result, nil
}

// streamEvent is the top-level JSON structure of one stream-json line.
type streamEvent struct {
	Type      string          `json:"type"`
	Event     json.RawMessage `json:"event"`
	SessionID string          `json:"session_id"`

	// Fields for "result" type
	Result  json.RawMessage `json:"result"`
	CostUSD float64         `json:"cost_usd"`
}

type contentBlock struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

// nestedEvent is the inner event from stream_event messages.
type nestedEvent struct {
	Type         string        `json:"type"`
	ContentBlock *contentBlock `json:"content_block"`
	Delta        *deltaBlock   `json:"delta"`
}

type deltaBlock struct {
	Type        string `json:"type"`
	Text        string `json:"text"`
	PartialJSON string `json:"partial_json"`
}

// resultPayload is the inner result object from the final result event.
type resultPayload struct {
	PermissionDenials []permDenialEntry `json:"permission_denials"`
	CostUSD           float64           `json:"cost_usd"`
	SessionID         string            `json:"session_id"`
}

type permDenialEntry struct {
	ToolName string `json:"tool_name"`
	Input    string `json:"input"`
}

func handleStreamEvent(event *streamEvent, ss *streamState, out io.Writer, onTool ToolFunc) error {
	if event.Event == nil {
		return nil
	}

	var nested nestedEvent
	if err := json.Unmarshal(event.Event, &nested); err != nil {
		return nil
	}

	switch nested.Type {
	case "content_block_start":
		if nested.ContentBlock != nil && nested.ContentBlock.Type == "tool_use" {
			ss.toolName = nested.ContentBlock.Name
			ss.inputBuf.Reset()
		}

	case "content_block_delta":
		if nested.Delta == nil {
			return nil
		}
		switch nested.Delta.Type {
		case "text_delta":
			if _, err := io.WriteString(out, nested.Delta.Text); err != nil {
				return err
			}
		case "input_json_delta":
			ss.inputBuf.WriteString(nested.Delta.PartialJSON)
		}

	case "content_block_stop":
		if ss.toolName != "" {
			if onTool != nil {
				onTool(ss.toolName, toolUseSummary(ss.toolName, ss.inputBuf.String()))
			}
			ss.toolName = ""
			ss.inputBuf.Reset()
		}
	}
	return nil
}

// toolUseSummary extracts the most informative field from accumulated tool input JSON.
func toolUseSummary(toolName, rawJSON string) string {
	if rawJSON == "" {
		return ""
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(rawJSON), &obj); err != nil {
		return rawJSON
	}

	var key string
	switch toolName {
	case "Bash":
		key = "command"
	case "Read", "Write", "Edit":
		key = "file_path"
	case "Grep", "Glob":
		key = "pattern"
	default:
		for _, v := range obj {
			if s, ok := v.(string); ok {
				return s
			}
		}
		return rawJSON
	}

	if v, ok := obj[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return rawJSON
}

func handleResultEvent(event *streamEvent, result *StreamResult) {
	if event.Result != nil {
		var payload resultPayload
		if err := json.Unmarshal(event.Result, &payload); err == nil {
			result.CostUSD = payload.CostUSD
			result.SessionID = payload.SessionID
			for _, d := range payload.PermissionDenials {
				result.PermissionDenials = append(result.PermissionDenials, PermissionDenial{
					Tool:  d.ToolName,
					Input: d.Input,
				})
			}
			return
		}
	}

	// Fallback: cost might be at top level
	if event.CostUSD > 0 {
		result.CostUSD = event.CostUSD
	}
	if event.SessionID != "" {
		result.SessionID = event.SessionID
	}
}
