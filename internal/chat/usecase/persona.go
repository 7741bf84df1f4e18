package usecase

import (
	"strings"

	"pulse-assistant/internal/model"
)

// personaTemplates are the selectable assistant characters. The key is
// what SetPersona stores; unknown keys fall back to "default".
var personaTemplates = map[string]string{
	"default": "You are Pulse, a helpful personal assistant living in Telegram. " +
		"Answer concisely and in the language the user writes in.",
	"formal": "You are Pulse, a precise professional assistant. " +
		"Answer formally, completely, and without small talk, in the language the user writes in.",
	"friendly": "You are Pulse, a warm and upbeat companion. " +
		"Keep answers light and conversational, in the language the user writes in.",
}

const toolGuidance = "Use the available tools when the answer depends on live data, " +
	"calculations, the user's calendar, reminders, or remembering facts. " +
	"Never invent tool results."

// systemPrompt assembles the system turn: persona template, memory
// digest, tool guidance.
func (uc *implUseCase) systemPrompt(persona string, facts []model.MemoryFact) string {
	if persona == "" {
		persona = uc.cfg.DefaultPersona
	}
	template, ok := personaTemplates[persona]
	if !ok {
		template = personaTemplates["default"]
	}

	var b strings.Builder
	b.WriteString(template)

	if len(facts) > 0 {
		b.WriteString("\n\nWhat you know about the user:")
		for _, f := range facts {
			b.WriteString("\n- ")
			b.WriteString(f.Content)
		}
	}

	b.WriteString("\n\n")
	b.WriteString(toolGuidance)
	return b.String()
}

// Personas lists the selectable persona keys.
func Personas() []string {
	return []string{"default", "formal", "friendly"}
}
