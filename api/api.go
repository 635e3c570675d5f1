// Package api implements [studio.Generator] and [studio.Analyzer] against the
// Content Creation Studio HTTP API.
//
// Generation requests stream their progress as server-sent events; the
// response body is handed to an [sse.Run], which owns it from then on.
package api

const (
	defaultBaseURL = "http://localhost:8000"
	generatePath   = "/api/create-content"
	analyzePath    = "/api/analyze-text"
	healthPath     = "/health"
)

// generateRequest is the JSON body sent to start a generation.
type generateRequest struct {
	Topic          string `json:"topic"`
	TargetAudience string `json:"target_audience"`
	Tone           string `json:"tone"`
	Keywords       string `json:"keywords"`
	SessionID      string `json:"session_id,omitempty"`
}

type analyzeRequest struct {
	Text string `json:"text"`
}

type analyzeResponse struct {
	Status   string `json:"status"`
	Analysis string `json:"analysis"`
}

// Health is the service status reported by the health endpoint.
type Health struct {
	Status         string `json:"status"`
	Message        string `json:"message"`
	Agent          string `json:"agent"`
	AgentResource  string `json:"agent_resource"`
	AgentConnected bool   `json:"agent_connected"`
}

// errorResponse is the JSON body returned on non-2xx responses.
type errorResponse struct {
	Detail string `json:"detail"`
}
