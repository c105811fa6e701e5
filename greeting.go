package disha

import (
	"context"
	"fmt"
	"log/slog"
)

// greetingInstructions maps supported language codes to an explicit generation
// instruction naming the language in its native script. Codes outside the
// table fall back to English.
var greetingInstructions = map[string]string{
	"en": "Generate in English",
	"hi": "Generate in Hindi (हिंदी में जवाब दें)",
	"te": "Generate in Telugu (తెలుగులో సమాధానం ఇవ్వండి)",
	"ta": "Generate in Tamil (தமிழில் பதிலளிக்கவும்)",
	"mr": "Generate in Marathi (मराठीत उत्तर द्या)",
	"bn": "Generate in Bengali (বাংলায় উত্তর দিন)",
}

const fallbackGreeting = "Hello! I'm your career guidance assistant. I'm here to help you explore your career options based on your assessment results. What would you like to know?"

const greetingTemplate = `Based on this student's assessment results, generate a warm, encouraging greeting that:
1. Welcomes them to the career guidance chat
2. Briefly acknowledges their assessment results
3. Invites them to ask questions about their career recommendations
4. Is age-appropriate for students aged 13-15

%s

Assessment Summary:
%s

Keep the greeting concise (2-3 sentences) and friendly.`

// GreetingInstruction resolves the generation instruction for a language code.
func GreetingInstruction(language string) string {
	if instruction, ok := greetingInstructions[language]; ok {
		return instruction
	}
	return greetingInstructions[DefaultLanguage]
}

// Greeting synthesizes a first-turn prompt from the assessment summary and
// routes it through the ordinary chat path with empty history. If that turn
// fails the caller still gets a usable greeting: the fixed fallback text with
// the underlying error kept on the Answer for observability.
func (s *Service) Greeting(ctx context.Context, assessmentSummary string, language string) Answer {
	prompt := fmt.Sprintf(greetingTemplate, GreetingInstruction(language), assessmentSummary)

	answer := s.Chat(ctx, prompt, nil, language)
	if answer.Err != nil {
		slog.Warn("greeting generation failed, serving fallback", "error", *answer.Err)
		fallback := fallbackGreeting
		return Answer{
			Response: &fallback,
			Sources:  []Source{},
			Err:      answer.Err,
		}
	}

	return answer
}
