package action

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbot-ai/answer-action/internal/models"
)

type fakeGitHub struct {
	turns   []models.ConversationTurn
	listErr error
	postErr error

	issuePosts      []string
	discussionPosts []string
}

func (f *fakeGitHub) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]models.ConversationTurn, error) {
	return f.turns, f.listErr
}

func (f *fakeGitHub) ListDiscussionComments(ctx context.Context, discussionID string) ([]models.ConversationTurn, error) {
	return f.turns, f.listErr
}

func (f *fakeGitHub) PostIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.issuePosts = append(f.issuePosts, body)
	return nil
}

func (f *fakeGitHub) PostDiscussionComment(ctx context.Context, discussionID, body string) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.discussionPosts = append(f.discussionPosts, body)
	return nil
}

type fakeAnswerer struct {
	answer   string
	err      error
	question string
	history  []models.ConversationTurn
}

func (f *fakeAnswerer) Answer(ctx context.Context, question string, history []models.ConversationTurn) (string, error) {
	f.question = question
	f.history = history
	return f.answer, f.err
}

func testRunner(gh *fakeGitHub, answers *fakeAnswerer) *Runner {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRunner(gh, answers, "acme", "widgets", logger)
}

func TestRun_IssueCommentPostsAnswer(t *testing.T) {
	gh := &fakeGitHub{turns: []models.ConversationTurn{{AuthorLogin: "alice", Body: "context"}}}
	answers := &fakeAnswerer{answer: "the answer"}
	r := testRunner(gh, answers)

	payload := []byte(`{"issue": {"number": 3}, "comment": {"body": "how?"}}`)
	require.NoError(t, r.Run(context.Background(), "issue_comment", payload))

	assert.Equal(t, "how?", answers.question)
	assert.Equal(t, gh.turns, answers.history)
	assert.Equal(t, []string{"the answer"}, gh.issuePosts)
	assert.Empty(t, gh.discussionPosts)
}

func TestRun_DiscussionPostsAnswer(t *testing.T) {
	gh := &fakeGitHub{}
	answers := &fakeAnswerer{answer: "the answer"}
	r := testRunner(gh, answers)

	payload := []byte(`{"discussion": {"node_id": "D_1", "body": "how?"}}`)
	require.NoError(t, r.Run(context.Background(), "discussion", payload))

	assert.Equal(t, []string{"the answer"}, gh.discussionPosts)
	assert.Empty(t, gh.issuePosts)
}

func TestRun_PipelineFailurePostsApology(t *testing.T) {
	gh := &fakeGitHub{}
	answers := &fakeAnswerer{err: fmt.Errorf("model offline")}
	r := testRunner(gh, answers)

	payload := []byte(`{"issue": {"number": 3, "body": "how?"}}`)
	err := r.Run(context.Background(), "issues", payload)

	require.ErrorContains(t, err, "model offline")
	require.Len(t, gh.issuePosts, 1)
	assert.Contains(t, gh.issuePosts[0], "Sorry")
	assert.NotContains(t, gh.issuePosts[0], "the answer")
}

func TestRun_HistoryFetchFailurePostsApology(t *testing.T) {
	gh := &fakeGitHub{listErr: fmt.Errorf("rate limited")}
	answers := &fakeAnswerer{answer: "unused"}
	r := testRunner(gh, answers)

	payload := []byte(`{"issue": {"number": 3, "body": "how?"}}`)
	err := r.Run(context.Background(), "issues", payload)

	require.ErrorContains(t, err, "list comments")
	require.Len(t, gh.issuePosts, 1)
	assert.Contains(t, gh.issuePosts[0], "Sorry")
}

func TestRun_UnknownEventIsSkipped(t *testing.T) {
	gh := &fakeGitHub{listErr: fmt.Errorf("should never be called")}
	r := testRunner(gh, &fakeAnswerer{})

	require.NoError(t, r.Run(context.Background(), "push", []byte(`{}`)))

	assert.Empty(t, gh.issuePosts)
	assert.Empty(t, gh.discussionPosts)
}

func TestRun_UndeterminableDestinationFailsWithoutComment(t *testing.T) {
	// The payload cannot be decoded, so no destination exists: the run is
	// marked failed and nothing is posted anywhere.
	gh := &fakeGitHub{}
	r := testRunner(gh, &fakeAnswerer{})

	err := r.Run(context.Background(), "issues", []byte(`not json`))

	require.Error(t, err)
	assert.Empty(t, gh.issuePosts)
	assert.Empty(t, gh.discussionPosts)
}

func TestRun_AnswerOrApologyNeverBoth(t *testing.T) {
	gh := &fakeGitHub{}
	answers := &fakeAnswerer{answer: "the answer"}
	r := testRunner(gh, answers)

	payload := []byte(`{"issue": {"number": 3, "body": "how?"}}`)
	require.NoError(t, r.Run(context.Background(), "issues", payload))

	require.Len(t, gh.issuePosts, 1)
	assert.Equal(t, "the answer", gh.issuePosts[0])
}
