package llm

import (
	"fmt"
	"strings"

	"github.com/canton7/Dox2Word-sub000/internal/ir"
	"github.com/canton7/Dox2Word-sub000/internal/render"
)

const basePrompt = `You are a technical editor polishing API reference documentation generated from source code comments.
Rewrite the Markdown you are given for clarity and consistent wording.
Rules:
- Keep every heading, its level and its order.
- Keep code blocks, inline code, signatures, identifiers and link targets exactly as written.
- Keep tables as Markdown pipe tables with the same columns.
- Do not add facts that are not in the input and do not drop documented parameters or return values.
- Reply with the Markdown document only, without commentary or surrounding code fences.`

// SystemPrompt returns the instructions sent ahead of the document.
func SystemPrompt(opts FormatOptions) string {
	if opts.Prompt != "" {
		return opts.Prompt
	}
	if opts.Language == "" || strings.EqualFold(opts.Language, "en") {
		return basePrompt
	}
	return basePrompt + fmt.Sprintf("\n- Write the prose in the language with code %q; leave identifiers untranslated.", opts.Language)
}

// UserPrompt renders the compound as the Markdown the model works on.
func UserPrompt(doc *ir.Document) string {
	return render.Markdown(doc)
}

// cleanReply strips a code fence wrapped around the whole reply, which
// models add despite being told not to.
func cleanReply(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		return s + "\n"
	}
	first := strings.IndexByte(s, '\n')
	if first < 0 {
		return s + "\n"
	}
	switch strings.TrimSpace(s[:first]) {
	case "```", "```markdown", "```md":
	default:
		return s + "\n"
	}
	body := strings.TrimSuffix(s[first+1:], "```")
	return strings.TrimSpace(body) + "\n"
}
