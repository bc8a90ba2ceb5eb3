package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/example/dasturxon/internal/models"
)

// NotifierService pushes plain-text order notifications to a Telegram
// admin chat. All sends are best-effort and never fail the request that
// triggered them.
type NotifierService struct {
	botToken    string
	adminChatID string
}

// NewNotifierService creates a NotifierService.
func NewNotifierService(botToken, adminChatID string) *NotifierService {
	return &NotifierService{
		botToken:    botToken,
		adminChatID: adminChatID,
	}
}

type telegramMessage struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

// SendMessage sends a message to the specified chat.
func (s *NotifierService) SendMessage(chatID, text string) error {
	if s.botToken == "" {
		zap.L().Debug("telegram bot token not configured, skipping notification")
		return nil
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)

	msg := telegramMessage{
		ChatID:    chatID,
		Text:      text,
		ParseMode: "HTML",
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		zap.L().Warn("telegram send failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		zap.L().Warn("telegram unexpected status", zap.Int("status", resp.StatusCode))
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}

	return nil
}

// SendToAdmin sends a message to the admin chat.
func (s *NotifierService) SendToAdmin(text string) error {
	if s.adminChatID == "" {
		return nil
	}
	return s.SendMessage(s.adminChatID, text)
}

// NotifyOrderPlaced announces a freshly placed order.
func (s *NotifierService) NotifyOrderPlaced(order *models.Order, merchantName, customerPhone string) {
	if s.adminChatID == "" {
		return
	}

	var itemsList strings.Builder
	for i, item := range order.Items {
		itemsList.WriteString(fmt.Sprintf("%d. <b>%s</b>\n   %d x %.2f = %.2f\n",
			i+1, item.ProductName, item.Quantity, item.UnitPrice, item.TotalPrice))
	}

	message := fmt.Sprintf(`<b>🛒 New order %s</b>
<b>Restaurant:</b> %s
<b>Customer:</b> %s
<b>Items:</b>
%s<b>Total:</b> %.2f
<b>Payment:</b> %s`,
		order.OrderNumber,
		merchantName,
		customerPhone,
		itemsList.String(),
		order.Total,
		order.PaymentMethod,
	)

	if err := s.SendToAdmin(strings.TrimSpace(message)); err != nil {
		zap.L().Warn("order placed notification failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
}

// NotifyStatusChange announces an order status transition.
func (s *NotifierService) NotifyStatusChange(order *models.Order, from models.OrderStatus) {
	if s.adminChatID == "" {
		return
	}

	message := fmt.Sprintf(`<b>📦 Order %s</b>
<b>Status:</b> %s → %s`,
		order.OrderNumber, from, order.Status)

	if order.Status == models.OrderRejected && order.RejectionReason != "" {
		message += fmt.Sprintf("\n<b>Reason:</b> %s", order.RejectionReason)
	}

	if err := s.SendToAdmin(message); err != nil {
		zap.L().Warn("status change notification failed",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
}
