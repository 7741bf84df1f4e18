package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"
)

// Chat actions shown to the user while the bot is working.
const (
	ActionTyping      = "typing"
	ActionUploadPhoto = "upload_photo"
	ActionUploadVoice = "upload_voice"
)

// Bot is the Telegram Bot API client.
type Bot struct {
	token      string
	apiURL     string
	httpClient *http.Client
}

// NewBot creates a new Telegram Bot client with the given token.
func NewBot(token string) *Bot {
	return &Bot{
		token:      token,
		apiURL:     fmt.Sprintf("https://api.telegram.org/bot%s", token),
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

// SetAPIURL overrides the default Telegram API URL for testing purposes.
func (b *Bot) SetAPIURL(url string) {
	b.apiURL = url
}

// SetWebhook registers the webhook URL with Telegram. The secretToken,
// when non-empty, is echoed back by Telegram in the
// X-Telegram-Bot-Api-Secret-Token header of every update.
func (b *Bot) SetWebhook(webhookURL, secretToken string) error {
	payload := map[string]string{"url": webhookURL}
	if secretToken != "" {
		payload["secret_token"] = secretToken
	}
	return b.call("setWebhook", payload)
}

// SendMessage sends a plain text message to a Telegram chat.
func (b *Bot) SendMessage(chatID int64, text string) error {
	return b.SendMessageWithMode(chatID, text, "")
}

// SendMessageWithMode sends a message with optional parse mode (e.g. "HTML").
func (b *Bot) SendMessageWithMode(chatID int64, text string, parseMode string) error {
	return b.call("sendMessage", SendMessageRequest{
		ChatID:    chatID,
		Text:      text,
		ParseMode: parseMode,
	})
}

// SendMessageWithMarkup sends a message with a reply or inline keyboard.
func (b *Bot) SendMessageWithMarkup(chatID int64, text, parseMode string, markup any) error {
	return b.call("sendMessage", SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   parseMode,
		ReplyMarkup: markup,
	})
}

// EditMessageText replaces the text of an already sent message.
func (b *Bot) EditMessageText(chatID, messageID int64, text, parseMode string) error {
	return b.call("editMessageText", EditMessageTextRequest{
		ChatID:    chatID,
		MessageID: messageID,
		Text:      text,
		ParseMode: parseMode,
	})
}

// AnswerCallbackQuery acknowledges an inline keyboard press.
func (b *Bot) AnswerCallbackQuery(callbackID, text string) error {
	return b.call("answerCallbackQuery", AnswerCallbackRequest{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

// SendChatAction shows a "typing" / "uploading" indicator in the chat.
func (b *Bot) SendChatAction(chatID int64, action string) error {
	return b.call("sendChatAction", SendChatActionRequest{ChatID: chatID, Action: action})
}

// SendPhoto uploads photo bytes with an optional caption.
func (b *Bot) SendPhoto(chatID int64, photo []byte, filename, caption string) error {
	return b.upload("sendPhoto", "photo", chatID, photo, filename, caption)
}

// SendVoice uploads an audio payload as a voice message.
func (b *Bot) SendVoice(chatID int64, audio []byte, filename string) error {
	return b.upload("sendVoice", "voice", chatID, audio, filename, "")
}

// call posts a JSON payload to a Bot API method and checks the envelope.
func (b *Bot) call(method string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal %s payload: %w", method, err)
	}

	resp, err := b.httpClient.Post(
		fmt.Sprintf("%s/%s", b.apiURL, method),
		"application/json",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	return checkResponse(method, resp)
}

// upload posts a multipart form with one binary field to a Bot API method.
func (b *Bot) upload(method, field string, chatID int64, data []byte, filename, caption string) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("chat_id", strconv.FormatInt(chatID, 10)); err != nil {
		return fmt.Errorf("failed to write chat_id field: %w", err)
	}
	if caption != "" {
		if err := writer.WriteField("caption", caption); err != nil {
			return fmt.Errorf("failed to write caption field: %w", err)
		}
	}

	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return fmt.Errorf("failed to write %s payload: %w", field, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize multipart form: %w", err)
	}

	resp, err := b.httpClient.Post(
		fmt.Sprintf("%s/%s", b.apiURL, method),
		writer.FormDataContentType(),
		&buf,
	)
	if err != nil {
		return fmt.Errorf("failed to call %s: %w", method, err)
	}
	defer resp.Body.Close()

	return checkResponse(method, resp)
}

func checkResponse(method string, resp *http.Response) error {
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram %s API error %d: %s", method, resp.StatusCode, string(raw))
	}

	var apiResp APIResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", method, err)
	}
	if !apiResp.OK {
		return fmt.Errorf("telegram %s failed: %s", method, apiResp.Description)
	}
	return nil
}
