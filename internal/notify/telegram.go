package notify

import (
	"fmt"

	"helpdesk/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramNotifier posts lifecycle updates into a staff group chat so the
// helpdesk team sees new and reassigned complaints without polling the
// dashboard.
type TelegramNotifier struct {
	BotAPI *tgbotapi.BotAPI
	ChatID int64
}

func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &TelegramNotifier{BotAPI: bot, ChatID: chatID}, nil
}

func (t *TelegramNotifier) ComplaintCreated(c *models.Complaint) error {
	text := fmt.Sprintf("🆕 Complaint #%d (%s)\n%s\nUrgency: %s", c.ID, c.Title, c.Description, c.Urgency)
	return t.send(text)
}

func (t *TelegramNotifier) ComplaintAssigned(c *models.Complaint, engineer *models.User) error {
	name := "unassigned"
	if engineer != nil {
		name = engineer.DisplayName()
	}
	return t.send(fmt.Sprintf("👷 Complaint #%d assigned to %s", c.ID, name))
}

func (t *TelegramNotifier) StatusChanged(c *models.Complaint, previousStatus, newStatus string) error {
	return t.send(fmt.Sprintf("🔁 Complaint #%d: %s → %s", c.ID, previousStatus, newStatus))
}

func (t *TelegramNotifier) send(text string) error {
	msg := tgbotapi.NewMessage(t.ChatID, text)
	_, err := t.BotAPI.Send(msg)
	return err
}
