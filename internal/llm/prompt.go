package llm

import (
	"strconv"
	"strings"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

// fieldGuidance describes each circular field to the model, keyed by JSON name.
var fieldGuidance = map[string]string{
	"event_title":            "Event Title",
	"date_time":              "Date and Time",
	"venue":                  "Venue",
	"event_description":      "Event Description (formal academic tone, suitable for a college circular)",
	"number_of_participants": "Number of Participants (extract from the input if mentioned, otherwise \"" + constants.NotProvided + "\")",
	"event_type":             "Event Type (infer from context, e.g. " + eventTypeExamples() + ". If unclear, use \"" + constants.NotProvided + "\")",
	"duration":               "Duration (extract if mentioned OR calculate from start/end times if provided, e.g. \"9:00 AM to 6:00 PM\" becomes \"9 hours\". If it cannot be determined, use \"" + constants.NotProvided + "\")",
	"rules":                  "Rules (bullet-point style text, one rule per array item)",
	"judging_criteria":       "Judging Criteria (bullet-point style text, one criterion per array item)",
	"coordinators":           "Coordinators (list of names)",
	"convenor":               "Convenor (single name)",
}

// instructions is fixed for the life of the process; only the user input varies.
var instructions = buildInstructions()

// BuildPrompt returns the complete prompt for one extraction: the fixed
// instruction block followed by the raw input, verbatim.
func BuildPrompt(text string) string {
	var b strings.Builder
	b.Grow(len(instructions) + len(text) + 16)
	b.WriteString(instructions)
	b.WriteString("\n\nUSER INPUT:\n")
	b.WriteString(text)
	return b.String()
}

func buildInstructions() string {
	var b strings.Builder

	b.WriteString("ROLE\n")
	b.WriteString("You are a content-generation agent. Convert chat-style, unstructured event information " +
		"provided by a user into professional, formal textual content suitable for an official college event circular.\n\n")

	b.WriteString("INPUT CHARACTERISTICS\n")
	b.WriteString("- Input comes as free-form chat text.\n")
	b.WriteString("- Information may be unordered, informal, or incomplete.\n")
	b.WriteString("- Do NOT ask follow-up questions.\n")
	b.WriteString("- If any detail is missing, write \"" + constants.NotProvided + "\".\n\n")

	b.WriteString("CONTENT TO GENERATE\n")
	b.WriteString("Generate content for ALL of the following sections:\n")
	for i, f := range entity.CircularFields {
		b.WriteString(strconv.Itoa(i + 1))
		b.WriteString(". ")
		b.WriteString(fieldGuidance[f])
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString("TONE AND STYLE RULES\n")
	b.WriteString("- Use formal, professional, academic language.\n")
	b.WriteString("- Suitable for an official college circular.\n")
	b.WriteString("- Avoid casual, promotional, or conversational tone.\n")
	b.WriteString("- Be concise, clear, and structured.\n\n")

	b.WriteString("OUTPUT FORMAT (STRICT)\n")
	b.WriteString("Return ONLY valid JSON in the exact structure below.\n")
	b.WriteString("Do NOT include explanations, markdown, code fences, or extra text.\n\n")
	b.WriteString(jsonSkeleton())
	b.WriteString("\n\n")

	b.WriteString("FINAL CONSTRAINTS\n")
	b.WriteString("- Output ONLY JSON.\n")
	b.WriteString("- No markdown.\n")
	b.WriteString("- No explanations.\n")
	b.WriteString("- No references to AI, language models, the generation system, or APIs.")

	return b.String()
}

// jsonSkeleton renders the empty eleven-field object the model must fill.
func jsonSkeleton() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range entity.CircularFields {
		b.WriteString("  \"")
		b.WriteString(f)
		b.WriteString("\": ")
		if _, ok := entity.ListFields[f]; ok {
			b.WriteString("[]")
		} else {
			b.WriteString("\"\"")
		}
		if i < len(entity.CircularFields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

func eventTypeExamples() string {
	all := constants.AsStringSlice()
	examples := make([]string, 0, len(all))
	for _, et := range all {
		if et == string(constants.Other) {
			continue
		}
		examples = append(examples, et)
	}
	return strings.Join(examples, ", ")
}
