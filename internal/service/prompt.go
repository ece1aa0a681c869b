package service

import (
	"strings"

	"github.com/docbot-ai/answer-action/internal/models"
)

// answerTemplate is the fixed completion instruction. The three placeholders
// are substituted in a single pass, so a placeholder-looking token inside the
// substituted content is never re-substituted.
const answerTemplate = `You are a support bot for an open source library. Answer the user's question
using only the documentation excerpts below. If the excerpts do not contain
the answer, say that you could not find it in the documentation instead of
guessing. Answer in Markdown.

Documentation:
{{files}}

{{history}}Question: {{question}}

Answer:`

// Disclaimer appended to every posted answer. CompressHistory strips it from
// prior bot replies so it does not compound across a thread.
const (
	disclaimerHeading = "### Disclaimer"

	disclaimer = disclaimerHeading + `

- This answer was generated from the project documentation by a language model and may be inaccurate.
- If it does not resolve your question, leave a follow-up comment and a maintainer will take a look.`
)

// Assemble composes the completion prompt from the raw question, the ranked
// context documents and the compressed conversation history.
//
// Context documents are rendered best-first as "Package:"/"Text:" blocks with
// their code blocks removed; an empty context set renders as an empty files
// block, which is a valid prompt, not an error. A non-empty history gets a
// "History:" label; an empty one disappears entirely.
func Assemble(question string, contexts []models.ScoredCandidate, history string) string {
	blocks := make([]string, 0, len(contexts))
	for _, c := range contexts {
		blocks = append(blocks, "Package: "+c.Document.Package+"\nText: "+Sanitize(c.Document.Content, true))
	}

	historyBlock := ""
	if history != "" {
		historyBlock = "History:\n" + Densify(history) + "\n"
	}

	return strings.NewReplacer(
		"{{files}}", strings.Join(blocks, "\n\n"),
		"{{history}}", historyBlock,
		"{{question}}", question,
	).Replace(answerTemplate)
}

// CompressHistory renders prior turns as "<login>: <body>" lines in thread
// order, one line break after each, dropping any disclaimer a previous bot
// reply carried.
func CompressHistory(turns []models.ConversationTurn) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(t.AuthorLogin)
		b.WriteString(": ")
		b.WriteString(StripDisclaimer(t.Body))
		b.WriteString("\n")
	}
	return b.String()
}

// Finalize appends the standing disclaimer to a raw model answer. It is
// applied exactly once, to every answer, right before posting.
func Finalize(raw string) string {
	return raw + "\n\n" + disclaimer
}

// StripDisclaimer removes a trailing disclaimer block appended by Finalize.
// For any body not already containing the disclaimer heading,
// StripDisclaimer(Finalize(body)) == body.
func StripDisclaimer(body string) string {
	i := strings.Index(body, disclaimerHeading)
	if i < 0 {
		return body
	}
	return strings.TrimSuffix(body[:i], "\n\n")
}
