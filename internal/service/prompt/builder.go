package prompt

import (
	"fmt"
	"strings"

	"inkwell/internal/domain/models"
)

// System prompts paired with each builder. The user prompt carries the
// aggregated context; the system prompt fixes the assistant's role.

// FormatSystemPrompt returns the system prompt for platform generation.
func FormatSystemPrompt(platform string) string {
	return fmt.Sprintf("You are a content formatting expert specializing in %s content. Transform the provided content according to the specific requirements while maintaining the core message and value.", platform)
}

// PlaybookSystemPrompt is the system prompt for playbook generation.
const PlaybookSystemPrompt = "You are an expert at creating actionable playbooks and step-by-step guides. Always respond with valid JSON only."

// SuggestionSystemPrompt is the system prompt for live writing suggestions.
const SuggestionSystemPrompt = "You are a writing assistant that provides contextual suggestions to enhance content. Always respond with valid JSON only."

// ResearchSystemPrompt is the system prompt for research insight lookups.
const ResearchSystemPrompt = "You are a research assistant that finds credible sources, scientific studies, proven frameworks, and expert insights related to the user's content. Always cite sources and provide verifiable information. Return only valid JSON."

// TopicIdeasSystemPrompt is the system prompt for topic idea generation.
const TopicIdeasSystemPrompt = "You are a content strategist generating topic ideas based on an author's previous work and mission. Return only valid JSON."

// BuildFormatPrompt assembles the generation prompt for one variant of
// one format. Section order is fixed: mission, format instructions,
// document content, general context, format-scoped context, closing
// platform instruction. Empty blocks are skipped. When variantCount > 1
// a de-correlation block asks for a distinct angle per variant.
func BuildFormatPrompt(format *models.Format, document *models.Document, blocks Blocks, variantIndex, variantCount int) string {
	var b strings.Builder

	if blocks.Mission != "" {
		b.WriteString(blocks.Mission)
		b.WriteString("\n\nIMPORTANT: All content must align with and advance the above Ikigai. This is your PRIMARY guiding principle.\n\n")
	}

	b.WriteString(format.Prompt)
	b.WriteString("\n\n")

	if variantCount > 1 {
		fmt.Fprintf(&b, "You are generating variant %d of %d for this format. Each variant must take a distinct angle, hook, or framing so the author can pick between genuinely different posts. Do not repeat the structure of other variants.\n\n", variantIndex+1, variantCount)
	}

	b.WriteString("Original content to transform:\n")
	b.WriteString(document.Content)
	b.WriteString("\n\n")

	if blocks.GeneralContext != "" {
		b.WriteString("General context from user's knowledge base:\n")
		b.WriteString(blocks.GeneralContext)
		b.WriteString("\n\n")
	}

	if blocks.FormatContext != "" {
		fmt.Fprintf(&b, "Format-specific context for %s:\n%s\n\n", format.Platform, blocks.FormatContext)
	}

	fmt.Fprintf(&b, "Please transform the content according to the format requirements while staying true to the mission, values, and goals defined in the Ikigai. The content should serve the target audience and reflect the specified brand voice. Return only the formatted content, ready to post on %s.", format.Platform)

	return b.String()
}

// BuildRegeneratePrompt assembles the regeneration prompt for an
// existing variant. Feedback entries are newest first: previousFeedback
// holds the stored history, currentFeedback the entry just submitted.
func BuildRegeneratePrompt(format *models.Format, document *models.Document, previousContent string, blocks Blocks, currentFeedback string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are regenerating content for the %s format (%s).\n\n", format.Name, format.Platform)

	b.WriteString("Original document content:\n")
	b.WriteString(document.Content)
	b.WriteString("\n\n")

	b.WriteString("Format requirements:\n")
	b.WriteString(format.Prompt)
	b.WriteString("\n\n")

	if blocks.Mission != "" {
		fmt.Fprintf(&b, "Author's mission and voice:\n%s\n\n", blocks.Mission)
	}

	if blocks.GeneralContext != "" {
		fmt.Fprintf(&b, "Context documents:\n%s\n\n", blocks.GeneralContext)
	}

	if len(blocks.Feedback) > 0 {
		fmt.Fprintf(&b, "Previous feedback for this format:\n%s\n\n", strings.Join(blocks.Feedback, "\n"))
	}

	if currentFeedback != "" {
		fmt.Fprintf(&b, "Current feedback: %s\n\n", currentFeedback)
	}

	b.WriteString("Previous generated version:\n")
	b.WriteString(previousContent)
	b.WriteString("\n\n")

	b.WriteString("Please regenerate this content incorporating the feedback provided. Make meaningful improvements while staying true to the format requirements and the author's mission.\n\nReturn only the improved content, no explanations.")

	return b.String()
}

// BuildPlaybookPrompt assembles the playbook generation prompt. The
// model must answer with the JSON structure described in the prompt.
func BuildPlaybookPrompt(userPrompt string, source *models.Document, blocks Blocks) string {
	var b strings.Builder

	if blocks.Mission != "" {
		b.WriteString(blocks.Mission)
		b.WriteString("\n\nIMPORTANT: This playbook must align with and advance the above Ikigai. All steps should serve the mission and target audience.\n\n")
	}

	b.WriteString(userPrompt)
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "Source concept to transform into playbook:\nTitle: %s\nContent: %s\n\n", source.Title, source.Content)

	if blocks.GeneralContext != "" {
		b.WriteString("Additional context from knowledge base:\n")
		b.WriteString(blocks.GeneralContext)
		b.WriteString("\n\n")
	}

	b.WriteString(`Generate a comprehensive playbook as a JSON structure with this format:
{
  "title": "Actionable title for the playbook",
  "description": "Brief description of what this playbook achieves",
  "steps": [
    {
      "title": "Step title",
      "content": "Detailed step content with specific actions",
      "order": 1,
      "duration": "Estimated time to complete",
      "resources": ["List of tools/resources needed"],
      "checkpoints": ["Success indicators for this step"]
    }
  ]
}

Ensure the playbook is practical, actionable, and aligned with the mission and values defined in the Ikigai.`)

	return b.String()
}

// BuildSuggestionPrompt assembles the live writing suggestion prompt.
// lastSentence is the tail of what the author just typed; the prompt
// keeps the model focused on continuing that exact thought.
func BuildSuggestionPrompt(lastSentence, mission, contextText, previousWritings string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an AI writing coach reading over the author's shoulder. They just wrote this:\n\n%q\n\n", lastSentence)

	b.WriteString(`Based on what they JUST wrote, send ONE quick suggestion to help them continue. Be:

- DIRECTLY RELEVANT to their last sentence/thought
- CONVERSATIONAL (like texting a friend)
- SHORT (8-12 words max)
- SPECIFIC to what they actually wrote

`)

	if mission != "" {
		fmt.Fprintf(&b, "Author's mission context: %s\n\n", mission)
	}

	fmt.Fprintf(&b, "Context documents available:\n%s\n\n", contextText)
	fmt.Fprintf(&b, "Recent previous writing:\n%s\n\n", previousWritings)

	b.WriteString(`Examples of GOOD suggestions based on their last sentence:
- If they wrote about failure: "Maybe share how you bounced back?"
- If they mentioned a stat: "Got a story that proves this?"
- If they made a claim: "What evidence supports this?"
- If they started a list: "What's the next point?"

Return ONE suggestion as JSON:
{
  "id": "unique_id",
  "type": "continuation",
  "content": "your 8-12 word suggestion",
  "source": "context" or "ai" (mark if from their context docs or AI thinking),
  "relevanceScore": 0.9
}

Focus ONLY on their last sentence. Help them write the very next thing.`)

	return b.String()
}

// BuildResearchPrompt assembles the research insight prompt. A custom
// query replaces the default exploration request.
func BuildResearchPrompt(content, customQuery string) string {
	var b strings.Builder

	if customQuery != "" {
		fmt.Fprintf(&b, "Research request: %s\n\n", customQuery)
	} else {
		b.WriteString("Help me explore this idea deeper with actual research, proven frameworks, scientific studies, and credible sources.\n\n")
	}

	fmt.Fprintf(&b, "Content to research:\n%s\n\n", content)

	b.WriteString(`Provide research insights, credible sources, scientific studies, proven frameworks, and real-world examples that relate to this content. Include:

1. **Relevant Studies & Research**: Actual scientific studies, research papers, or credible reports that support or challenge the ideas
2. **Frameworks & Models**: Proven frameworks, mental models, or methodologies related to the topic
3. **Statistics & Data**: Real statistics, data points, or metrics from credible sources
4. **Expert Insights**: Quotes or findings from recognized experts in the field
5. **Case Studies**: Real-world examples or case studies that illustrate the concepts

For each insight, provide:
- The specific finding, framework, or insight
- The source (author, study, organization)
- Why it's relevant to the content

Return as a JSON array:
[
  {
    "type": "study" | "framework" | "statistic" | "insight",
    "content": "The actual research finding or insight (2-3 sentences)",
    "source": "Author/Organization/Study name",
    "url": "URL if available (optional)"
  }
]

Focus on credible, verifiable sources. Provide 5-8 highly relevant research insights.`)

	return b.String()
}

// BuildTopicIdeasPrompt assembles the topic idea generation prompt from
// recent writings and context summaries.
func BuildTopicIdeasPrompt(ikigai *models.Ikigai, recentWritings, contextText string) string {
	var b strings.Builder

	b.WriteString("Based on the author's recent writing and context documents, generate 10 fresh topic ideas they could write about.\n\n")

	if ikigai != nil {
		enemy := "Not specified"
		if ikigai.Enemy != nil && *ikigai.Enemy != "" {
			enemy = *ikigai.Enemy
		}
		fmt.Fprintf(&b, "Author's Mission: %s\nTarget Audience: %s\nWhat They Stand Against: %s\n\n", ikigai.Mission, ikigai.Audience, enemy)
	}

	fmt.Fprintf(&b, "Recent writings:\n%s\n\n", recentWritings)
	fmt.Fprintf(&b, "Context documents:\n%s\n\n", contextText)

	b.WriteString(`Generate 10 specific, actionable topic ideas that:
- Align with their mission and audience
- Build on themes from their previous writing
- Reference concepts from their context documents
- Are specific enough to write about (not too broad)
- Would provide value to their audience

Return as a JSON array of strings:
["Topic idea 1", "Topic idea 2", ...]

Be specific and creative. Each idea should be a complete topic they could write about.`)

	return b.String()
}

// LastSentence extracts the trailing sentence fragment used to anchor a
// writing suggestion: the last two sentence-delimited pieces joined.
func LastSentence(content string) string {
	parts := splitSentences(content)
	if len(parts) == 0 {
		return strings.TrimSpace(content)
	}
	start := len(parts) - 2
	if start < 0 {
		start = 0
	}
	return strings.TrimSpace(strings.Join(parts[start:], "."))
}

func splitSentences(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := fields[:0]
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			out = append(out, f)
		}
	}
	return out
}
