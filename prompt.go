package disha

import (
	"fmt"
	"strings"

	"github.com/margdarshak/disha/vectorstore"
)

const DefaultLanguage = "en"

const noContextFound = "No relevant information found."

const contextSeparator = "\n\n---\n\n"

const unknownTitle = "Unknown"

// directiveTemplate fixes the assistant persona and behavior rules. The
// language is a free-form string substituted as-is; only the greeting path
// uses the fixed instruction table, and that asymmetry is intentional.
const directiveTemplate = `You are a helpful and friendly multilingual career guidance assistant for Indian students aged 13-15.

LANGUAGE INSTRUCTION:
You MUST respond in this language: %[1]s
- If the user's input is not in %[1]s, translate internally as needed.
- All final answers MUST be in %[1]s.

When answering questions about careers, education paths, or professional guidance:
- Keep responses SHORT and CONCISE (2-4 paragraphs maximum)
- Prioritize information from the Context provided below
- Use the context to give detailed, specific answers
- If the context has relevant information, base your answer primarily on it
- If the context doesn't have the information, you can provide general career guidance relevant to India
- If the question is unrelated to career guidance/education/careers, politely inform the user that you can only assist with career-related queries
- Keep responses age-appropriate, encouraging, and culturally sensitive

Context:
%[2]s`

// AssembleDirective builds the system directive for one turn.
func AssembleDirective(language string, contextText string) string {
	return fmt.Sprintf(directiveTemplate, language, contextText)
}

// FormatContext renders retrieved chunks as numbered, titled blocks in rank
// order. Empty retrieval gets an explicit marker so the model knows the
// corpus had nothing rather than seeing a blank section.
func FormatContext(results []vectorstore.Result) string {
	if len(results) == 0 {
		return noContextFound
	}

	blocks := make([]string, 0, len(results))
	for i, res := range results {
		blocks = append(blocks, fmt.Sprintf("[Source %d: %s]\n%s", i+1, titleOf(res), res.Text))
	}

	return strings.Join(blocks, contextSeparator)
}

// FormatSources converts retrieval results into citation entries, capped at
// sourceTopK, snippets truncated to snippetMaxChars characters.
func FormatSources(results []vectorstore.Result) []Source {
	if len(results) > sourceTopK {
		results = results[:sourceTopK]
	}

	sources := make([]Source, 0, len(results))
	for _, res := range results {
		sources = append(sources, Source{
			Title:      titleOf(res),
			ChunkIndex: res.ChunkIndex,
			Snippet:    truncate(res.Text, snippetMaxChars),
		})
	}

	return sources
}

func titleOf(res vectorstore.Result) string {
	if len(res.Title) == 0 {
		return unknownTitle
	}
	return res.Title
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
