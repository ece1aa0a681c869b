package models

import (
	"encoding/json"
	"errors"
	"fmt"
)

// EventKind enumerates the trigger events the action understands. The values
// match GitHub's webhook event names as delivered in GITHUB_EVENT_NAME.
type EventKind string

const (
	KindIssue             EventKind = "issues"
	KindIssueComment      EventKind = "issue_comment"
	KindDiscussion        EventKind = "discussion"
	KindDiscussionComment EventKind = "discussion_comment"
)

// ErrUnknownEvent marks trigger events the action does not handle. Callers
// log and skip these rather than failing the run.
var ErrUnknownEvent = errors.New("unknown event kind")

// Event is the parsed trigger: exactly one question string plus the fields
// needed to resolve the posting destination. The destination is derived once
// here so the answer path and the error-fallback path cannot disagree on it.
type Event struct {
	Kind     EventKind
	Question string

	// IssueNumber is set for issues / issue_comment events.
	IssueNumber int

	// DiscussionID is the GraphQL node ID, set for discussion events.
	DiscussionID string
}

// eventPayload covers the union of the four webhook payload shapes we read.
type eventPayload struct {
	Issue *struct {
		Number int    `json:"number"`
		Body   string `json:"body"`
	} `json:"issue"`
	Discussion *struct {
		NodeID string `json:"node_id"`
		Body   string `json:"body"`
	} `json:"discussion"`
	Comment *struct {
		Body string `json:"body"`
	} `json:"comment"`
}

// ParseEvent extracts the question and posting destination from a raw webhook
// payload. Event names outside the four supported kinds return
// ErrUnknownEvent before the payload is even decoded.
func ParseEvent(eventName string, payload []byte) (Event, error) {
	kind := EventKind(eventName)
	switch kind {
	case KindIssue, KindIssueComment, KindDiscussion, KindDiscussionComment:
	default:
		return Event{}, fmt.Errorf("%q: %w", eventName, ErrUnknownEvent)
	}

	var p eventPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return Event{}, fmt.Errorf("decode %s payload: %w", eventName, err)
	}

	switch kind {
	case KindIssue:
		if p.Issue == nil {
			return Event{}, fmt.Errorf("%s payload has no issue", eventName)
		}
		return Event{Kind: kind, Question: p.Issue.Body, IssueNumber: p.Issue.Number}, nil

	case KindIssueComment:
		if p.Issue == nil || p.Comment == nil {
			return Event{}, fmt.Errorf("%s payload has no issue or comment", eventName)
		}
		return Event{Kind: kind, Question: p.Comment.Body, IssueNumber: p.Issue.Number}, nil

	case KindDiscussion:
		if p.Discussion == nil {
			return Event{}, fmt.Errorf("%s payload has no discussion", eventName)
		}
		return Event{Kind: kind, Question: p.Discussion.Body, DiscussionID: p.Discussion.NodeID}, nil

	default: // KindDiscussionComment
		if p.Discussion == nil || p.Comment == nil {
			return Event{}, fmt.Errorf("%s payload has no discussion or comment", eventName)
		}
		return Event{Kind: kind, Question: p.Comment.Body, DiscussionID: p.Discussion.NodeID}, nil
	}
}
