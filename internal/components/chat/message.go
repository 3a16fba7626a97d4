package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"

	"hr-tui/internal/hrclient"
	"hr-tui/internal/styles"
)

// renderMessage renders one transcript message. open is true for the
// assistant message of the in-flight turn; frame is the current spinner
// frame used for pending steps.
func renderMessage(msg hrclient.Message, width int, open bool, frame string) string {
	var sb strings.Builder

	switch msg.Role {
	case hrclient.RoleUser:
		sb.WriteString(styles.UserLabel.Render("You"))
		sb.WriteString("\n")
	case hrclient.RoleAssistant:
		sb.WriteString(styles.AssistantLabel.Render("HR Assistant"))
		sb.WriteString("\n")
	}

	if msg.Role == hrclient.RoleAssistant {
		if block := renderThoughtProcess(msg, frame); block != "" {
			sb.WriteString(block)
			sb.WriteString("\n")
		}
	}

	content := msg.Content
	if msg.Role == hrclient.RoleAssistant && content != "" {
		if rendered, err := renderMarkdown(content, width-4); err == nil {
			content = strings.TrimSpace(rendered)
		}
	}

	if open {
		content += styles.StreamingCursor.Render("▊")
	}

	switch msg.Role {
	case hrclient.RoleUser:
		sb.WriteString(styles.UserMessage.Width(width - 2).Render(content))
	case hrclient.RoleAssistant:
		sb.WriteString(styles.AssistantMessage.Width(width - 2).Render(content))
	}

	return sb.String()
}

// renderThoughtProcess renders the step list for a message. Empty when the
// message has no steps and is not thinking.
func renderThoughtProcess(msg hrclient.Message, frame string) string {
	if len(msg.Steps) == 0 && !msg.IsThinking {
		return ""
	}

	var sb strings.Builder
	if msg.IsThinking {
		sb.WriteString(styles.ThoughtHeader.Render(frame + " Thinking Process..."))
	} else {
		sb.WriteString(styles.ThoughtHeader.Render("✦ Analysis Complete"))
	}

	if len(msg.Steps) > 0 {
		sb.WriteString("\n")
		var lines []string
		for _, step := range msg.Steps {
			lines = append(lines, renderStep(step, frame))
		}
		sb.WriteString(styles.ThoughtBlock.Render(strings.Join(lines, "\n")))
	}

	return sb.String()
}

func renderStep(step hrclient.Step, frame string) string {
	var glyph string
	switch step.Status {
	case hrclient.StatusPending:
		glyph = styles.StepPending.Render(frame)
	case hrclient.StatusError:
		glyph = styles.StepError.Render("✗")
	default:
		glyph = styles.StepComplete.Render("✓")
	}
	return glyph + " " + styles.StepTitle.Render(step.Title)
}

// renderMarkdown renders markdown content for the terminal.
func renderMarkdown(content string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return content, err
	}
	return r.Render(content)
}
