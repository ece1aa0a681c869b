// Package action owns the per-event control flow: parse the trigger, run the
// answer pipeline, and post the result—or the fallback apology—back to the
// thread that asked.
package action

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/docbot-ai/answer-action/internal/models"
)

// apology is posted in place of an answer when the pipeline fails after the
// destination is known. It is fallback-comment-or-real-answer: never both,
// and never neither when a destination could be resolved.
const apology = "Sorry, something went wrong while I was generating an answer " +
	"to your question. A maintainer will follow up here."

// Answerer produces a finalized answer for a question and its thread history.
type Answerer interface {
	Answer(ctx context.Context, question string, history []models.ConversationTurn) (string, error)
}

// GitHubClient is the slice of the GitHub API the runner needs.
type GitHubClient interface {
	ListIssueComments(ctx context.Context, owner, repo string, number int) ([]models.ConversationTurn, error)
	ListDiscussionComments(ctx context.Context, discussionID string) ([]models.ConversationTurn, error)
	PostIssueComment(ctx context.Context, owner, repo string, number int, body string) error
	PostDiscussionComment(ctx context.Context, discussionID, body string) error
}

// Runner executes one invocation of the action.
type Runner struct {
	gh      GitHubClient
	answers Answerer
	owner   string
	repo    string
	logger  *slog.Logger
}

// NewRunner wires dependencies.
func NewRunner(gh GitHubClient, answers Answerer, owner, repo string, logger *slog.Logger) *Runner {
	return &Runner{
		gh:      gh,
		answers: answers,
		owner:   owner,
		repo:    repo,
		logger:  logger,
	}
}

// Run handles a single trigger event.
//
// Unsupported event kinds are logged and skipped without failing the run. Any
// pipeline error after the destination is resolved triggers a best-effort
// apology comment to that destination; the original error is still returned
// so the hosting runner marks the invocation failed. When no destination can
// be determined, only the log-and-fail path applies.
func (r *Runner) Run(ctx context.Context, eventName string, payload []byte) error {
	ev, err := models.ParseEvent(eventName, payload)
	if errors.Is(err, models.ErrUnknownEvent) {
		r.logger.Warn("ignoring unsupported event", "event", eventName)
		return nil
	}
	if err != nil {
		r.logger.Error("cannot resolve destination", "event", eventName, "error", err)
		return err
	}

	if err := r.answer(ctx, ev); err != nil {
		r.logger.Error("answer pipeline failed", "event", eventName, "error", err)
		if postErr := r.post(ctx, ev, apology); postErr != nil {
			r.logger.Error("posting fallback comment failed", "error", postErr)
		}
		return err
	}
	return nil
}

// answer runs the linear pipeline for one parsed event.
func (r *Runner) answer(ctx context.Context, ev models.Event) error {
	history, err := r.history(ctx, ev)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	answer, err := r.answers.Answer(ctx, ev.Question, history)
	if err != nil {
		return err
	}

	if err := r.post(ctx, ev, answer); err != nil {
		return fmt.Errorf("post answer: %w", err)
	}
	r.logger.Info("posted answer", "event", string(ev.Kind))
	return nil
}

func (r *Runner) history(ctx context.Context, ev models.Event) ([]models.ConversationTurn, error) {
	switch ev.Kind {
	case models.KindIssue, models.KindIssueComment:
		return r.gh.ListIssueComments(ctx, r.owner, r.repo, ev.IssueNumber)
	default:
		return r.gh.ListDiscussionComments(ctx, ev.DiscussionID)
	}
}

func (r *Runner) post(ctx context.Context, ev models.Event, body string) error {
	switch ev.Kind {
	case models.KindIssue, models.KindIssueComment:
		return r.gh.PostIssueComment(ctx, r.owner, r.repo, ev.IssueNumber, body)
	default:
		return r.gh.PostDiscussionComment(ctx, ev.DiscussionID, body)
	}
}
