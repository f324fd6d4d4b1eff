package slack

import (
	"strings"

	"github.com/slack-go/slack"
)

// BuildSummaryBlocks renders a run summary. The first sentence becomes the
// section text and the rest, if any, goes to a context line.
func BuildSummaryBlocks(summary string) []slack.Block {
	head, rest, _ := strings.Cut(summary, ". ")

	blocks := []slack.Block{
		slack.NewSectionBlock(
			slack.NewTextBlockObject(slack.MarkdownType, head, false, false),
			nil,
			nil,
		),
	}

	if rest != "" {
		blocks = append(blocks, slack.NewContextBlock(
			"",
			slack.NewTextBlockObject(slack.MarkdownType, rest, false, false),
		))
	}

	return blocks
}
