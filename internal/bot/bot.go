package bot

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Summarizer produces the text of a status report.
type Summarizer interface {
	StatusSummary(ctx context.Context, now time.Time) (string, error)
}

// Notifier delivers status reports somewhere a human will read them.
type Notifier interface {
	SendStatusReport(ctx context.Context) error
}

// Sender is the subset of the Telegram API used to post messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot posts status reports to a single Telegram chat.
type Bot struct {
	api     Sender
	chatID  int64
	reports Summarizer
	now     func() time.Time
}

// New authorizes against the Telegram API with token.
func New(token string, chatID int64, reports Summarizer) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}

	log.Printf("[info] bot authorized on account %s", api.Self.UserName)

	return NewWithSender(api, chatID, reports), nil
}

// NewWithSender builds a Bot around an existing sender.
func NewWithSender(api Sender, chatID int64, reports Summarizer) *Bot {
	return &Bot{api: api, chatID: chatID, reports: reports, now: time.Now}
}

// SendStatusReport builds the current summary and sends it to the chat.
func (b *Bot) SendStatusReport(ctx context.Context) error {
	text, err := b.reports.StatusSummary(ctx, b.now())
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(b.chatID, "<pre>"+html.EscapeString(text)+"</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("send summary to %d: %w", b.chatID, err)
	}
	return nil
}

// LogNotifier writes status reports to the process log. It is used when no
// Telegram token is configured.
type LogNotifier struct {
	reports Summarizer
}

func NewLogNotifier(reports Summarizer) *LogNotifier {
	return &LogNotifier{reports: reports}
}

func (n *LogNotifier) SendStatusReport(ctx context.Context) error {
	text, err := n.reports.StatusSummary(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("build summary: %w", err)
	}
	log.Printf("[info] %s", text)
	return nil
}
