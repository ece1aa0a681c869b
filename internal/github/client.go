// Package github is a minimal wrapper around GitHub's REST and GraphQL APIs.
// It is intentionally light—just the endpoints the action requires: listing
// and posting comments on the triggering issue or discussion.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/docbot-ai/answer-action/internal/models"
)

// Client talks to GitHub on behalf of the action.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
	gqlURL  string
}

// NewClient returns a ready-to-use GitHub API client. The token is the
// workflow's GITHUB_TOKEN; without it discussion queries are rejected
// outright and REST calls hit very low rate-limits.
func NewClient(token string) *Client {
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		token:   token,
		baseURL: "https://api.github.com",
		gqlURL:  "https://api.github.com/graphql",
	}
}

// restComment mirrors the fields we need from a REST comment object.
type restComment struct {
	Body string `json:"body"`
	User struct {
		Login string `json:"login"`
	} `json:"user"`
}

// ListIssueComments returns the comments of an issue in chronological order.
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, number int) ([]models.ConversationTurn, error) {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments?per_page=100",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	c.addHeaders(req)

	var comments []restComment
	if err := c.do(req, &comments); err != nil {
		return nil, err
	}

	turns := make([]models.ConversationTurn, len(comments))
	for i, cm := range comments {
		turns[i] = models.ConversationTurn{AuthorLogin: cm.User.Login, Body: cm.Body}
	}
	return turns, nil
}

// PostIssueComment adds a comment to an issue.
func (c *Client) PostIssueComment(ctx context.Context, owner, repo string, number int, body string) error {
	u := fmt.Sprintf("%s/repos/%s/%s/issues/%d/comments",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), number)

	payload, err := json.Marshal(map[string]string{"body": body})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.addHeaders(req)

	return c.do(req, nil)
}

const listDiscussionCommentsQuery = `
query($id: ID!) {
  node(id: $id) {
    ... on Discussion {
      comments(first: 100) {
        nodes {
          author { login }
          body
        }
      }
    }
  }
}`

// ListDiscussionComments returns the comments of a discussion, identified by
// its GraphQL node ID, in chronological order.
func (c *Client) ListDiscussionComments(ctx context.Context, discussionID string) ([]models.ConversationTurn, error) {
	var resp struct {
		Node struct {
			Comments struct {
				Nodes []struct {
					Author struct {
						Login string `json:"login"`
					} `json:"author"`
					Body string `json:"body"`
				} `json:"nodes"`
			} `json:"comments"`
		} `json:"node"`
	}

	if err := c.graphql(ctx, listDiscussionCommentsQuery, map[string]any{"id": discussionID}, &resp); err != nil {
		return nil, err
	}

	nodes := resp.Node.Comments.Nodes
	turns := make([]models.ConversationTurn, len(nodes))
	for i, n := range nodes {
		turns[i] = models.ConversationTurn{AuthorLogin: n.Author.Login, Body: n.Body}
	}
	return turns, nil
}

const addDiscussionCommentMutation = `
mutation($id: ID!, $body: String!) {
  addDiscussionComment(input: {discussionId: $id, body: $body}) {
    comment { id }
  }
}`

// PostDiscussionComment adds a comment to a discussion.
func (c *Client) PostDiscussionComment(ctx context.Context, discussionID, body string) error {
	vars := map[string]any{"id": discussionID, "body": body}
	return c.graphql(ctx, addDiscussionCommentMutation, vars, nil)
}

// graphql posts one query/mutation and decodes the data envelope into out.
func (c *Client) graphql(ctx context.Context, query string, vars map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{"query": query, "variables": vars})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gqlURL, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	c.addHeaders(req)

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}
	if err := c.do(req, &envelope); err != nil {
		return err
	}
	if len(envelope.Errors) > 0 {
		return fmt.Errorf("github: graphql: %s", envelope.Errors[0].Message)
	}
	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("github: decode graphql data: %w", err)
		}
	}
	return nil
}

// addHeaders sets authentication and Accept headers.
func (c *Client) addHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("User-Agent", "answer-action")
}

// do executes the HTTP request and decodes JSON into v when v is non-nil.
func (c *Client) do(req *http.Request, v any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("github: unexpected status %s for %s", resp.Status, req.URL.Path)
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
