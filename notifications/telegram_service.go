package notifications

import (
	"fmt"
	"log"
	"strings"

	config "github.com/Antzgech/makeda_quest/configs"
	"github.com/Antzgech/makeda_quest/database"
	"github.com/Antzgech/makeda_quest/models"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
)

var bot *tgbotapi.BotAPI

// InitTelegramNotifier connects the bot used for push messages. Without a
// token the notifier stays disabled and every send is a no-op.
func InitTelegramNotifier() {
	token := config.Config("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Println("⚠️ Telegram notifier not configured. Missing TELEGRAM_BOT_TOKEN.")
		bot = nil
		return
	}

	var err error
	bot, err = tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Printf("🔥 Failed to initialize Telegram notifier: %v", err)
		bot = nil
		return
	}

	log.Printf("✅ Telegram notifier ready as @%s", bot.Self.UserName)
}

// NotifyBadgeAward tells the user about freshly earned badges. Fire and
// forget; a delivery failure never affects the award itself.
func NotifyBadgeAward(userID uuid.UUID, badgeNames []string) {
	if bot == nil || len(badgeNames) == 0 {
		return
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		log.Printf("Error loading user %s for badge notification: %v", userID, err)
		return
	}

	text := fmt.Sprintf("🎉 You earned: %s!", strings.Join(badgeNames, ", "))
	msg := tgbotapi.NewMessage(user.TelegramID, text)
	if _, err := bot.Send(msg); err != nil {
		log.Printf("Error sending badge notification to %d: %v", user.TelegramID, err)
	}
}
