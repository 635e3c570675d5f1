package sse

import (
	"encoding/json"

	"github.com/fwojciec/studio"
)

// Wire discriminators carried in the payload's "type" field.
const (
	typeStatus   = "status"
	typeEvent    = "event"
	typeComplete = "complete"
	typeError    = "error"
)

// The server's payloads share one "type" discriminator. Each kind is decoded
// into its own shape so a malformed field that kind does not use cannot drop
// the event.
type (
	envelope struct {
		Type string `json:"type"`
	}
	statusPayload struct {
		Message   string `json:"message"`
		SessionID string `json:"session_id"`
	}
	eventPayload struct {
		Author         string `json:"author"`
		ContentPreview string `json:"content_preview"`
	}
	completePayload struct {
		Content string `json:"content"`
	}
	errorPayload struct {
		Message string `json:"message"`
	}
)

// Classify parses a frame payload and maps it to a [studio.Event]. It returns
// false for payloads that are not JSON objects, lack a string "type", carry a
// type outside the known set, or hold an ill-typed field their type uses.
// Fields a type does not use are ignored whatever their value.
func Classify(data string) (studio.Event, bool) {
	raw := []byte(data)
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	switch env.Type {
	case typeStatus:
		var p statusPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, false
		}
		return studio.EventStatus{Message: p.Message, SessionID: p.SessionID}, true
	case typeEvent:
		var p eventPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, false
		}
		return studio.EventAgentActivity{Author: p.Author, Preview: p.ContentPreview}, true
	case typeComplete:
		var p completePayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, false
		}
		return studio.EventCompletion{Content: p.Content}, true
	case typeError:
		var p errorPayload
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, false
		}
		return studio.EventFailure{Message: p.Message}, true
	default:
		return nil, false
	}
}
