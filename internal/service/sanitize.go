package service

import (
	"regexp"
	"strings"
)

// Patterns for the sanitize pipeline. Application order matters: the usage
// region is extracted before code blocks and comments are removed, and stray
// section tags are only swept up afterwards because sibling sections outside
// the extracted region can leave them behind.
var (
	leadingCommentRe = regexp.MustCompile(`(?s)^\s*<!--(.*?)-->\n*`)
	lineEndingRe     = regexp.MustCompile(`\r\n?`)
	usageSectionRe   = regexp.MustCompile(`(?s)<section class="usage">(.*?)</section>`)
	codeBlockRe      = regexp.MustCompile("(?s)```.*?```")
	linkRefRe        = regexp.MustCompile(`(?m)^\[[^\]]+\]:[ \t]*\S.*$\n?`)
	htmlCommentRe    = regexp.MustCompile(`(?s)<!--.*?-->`)
	sectionTagRe     = regexp.MustCompile(`</?section[^>]*>`)
	extraBreaksRe    = regexp.MustCompile(`\n{3,}`)

	newlineRunRe = regexp.MustCompile(`\n+`)
	blankRunRe   = regexp.MustCompile(`[ \t]+`)
)

// Sanitize turns one raw documentation file into prompt-ready text.
//
// The steps run in a fixed order: strip the license header, normalize line
// endings, cut the document down to its usage section when one exists,
// optionally drop fenced code blocks, then remove link-reference definitions,
// HTML comments and leftover section tags before collapsing runs of three or
// more line breaks to two. Documents with several usage sections keep only
// the first one.
func Sanitize(text string, removeCodeBlocks bool) string {
	text = stripLicenseHeader(text)
	text = lineEndingRe.ReplaceAllString(text, "\n")

	if m := usageSectionRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}
	if removeCodeBlocks {
		text = codeBlockRe.ReplaceAllString(text, "")
	}

	text = linkRefRe.ReplaceAllString(text, "")
	text = htmlCommentRe.ReplaceAllString(text, "")
	text = sectionTagRe.ReplaceAllString(text, "")
	return extraBreaksRe.ReplaceAllString(text, "\n\n")
}

// stripLicenseHeader removes the structured license comment our docs carry at
// the top of every file. Other leading comments are left for the later
// comment sweep so usage extraction still sees them in place.
func stripLicenseHeader(text string) string {
	m := leadingCommentRe.FindStringSubmatch(text)
	if m == nil || !strings.Contains(m[1], "@license") {
		return text
	}
	return text[len(m[0]):]
}

// Densify collapses every run of line breaks to a single line break and every
// run of spaces or tabs to a single space, then trims the surrounding
// whitespace. It is idempotent: densifying twice equals densifying once.
//
// It is applied to compressed conversation history right before prompt
// assembly, where a dense block beats faithful formatting.
func Densify(text string) string {
	text = newlineRunRe.ReplaceAllString(text, "\n")
	text = blankRunRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
