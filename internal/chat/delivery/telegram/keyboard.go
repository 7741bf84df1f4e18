package telegram

import (
	"pulse-assistant/internal/chat/usecase"
	pkgTelegram "pulse-assistant/pkg/telegram"
)

const helpText = "*How to use me:*\n\n" +
	"Write anything — I keep context of the last turns of our conversation.\n\n" +
	"`//img <prompt>` — generate a picture\n" +
	"`//voice <text>` — text to speech\n\n" +
	"/settings — pick a model or persona\n" +
	"/config — show current settings\n" +
	"/memory — what I remember about you\n" +
	"/forget — erase my memory of you\n" +
	"/clear — start the conversation over"

// mainKeyboard is the persistent reply keyboard shown after /start.
func mainKeyboard() pkgTelegram.ReplyKeyboardMarkup {
	return pkgTelegram.ReplyKeyboardMarkup{
		Keyboard: [][]pkgTelegram.KeyboardButton{
			{{Text: "/settings"}, {Text: "/config"}},
			{{Text: "/memory"}, {Text: "/clear"}},
		},
		ResizeKeyboard: true,
	}
}

// settingsKeyboard offers persona and chat model choices as inline
// buttons. Callback data format: "persona:<key>" / "model:<name>".
func settingsKeyboard(chatModels []string) pkgTelegram.InlineKeyboardMarkup {
	var rows [][]pkgTelegram.InlineKeyboardButton

	var personaRow []pkgTelegram.InlineKeyboardButton
	for _, p := range usecase.Personas() {
		personaRow = append(personaRow, pkgTelegram.InlineKeyboardButton{
			Text:         "🎭 " + p,
			CallbackData: "persona:" + p,
		})
	}
	rows = append(rows, personaRow)

	for _, m := range chatModels {
		rows = append(rows, []pkgTelegram.InlineKeyboardButton{
			{Text: "🤖 " + m, CallbackData: "model:" + m},
		})
	}

	return pkgTelegram.InlineKeyboardMarkup{InlineKeyboard: rows}
}
