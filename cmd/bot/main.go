package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	config "github.com/Antzgech/makeda_quest/configs"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// The bot is the front door only: it forwards the start event to the API,
// which owns identity resolution and progression, and hands the player a
// WebApp button into the mini-app.

type authRequest struct {
	TelegramID   int64  `json:"telegram_id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	ReferralCode string `json:"referral_code,omitempty"`
}

var client = &http.Client{Timeout: 15 * time.Second}

func main() {
	token := config.Config("TELEGRAM_BOT_TOKEN")
	if token == "" {
		log.Fatal("🔥 TELEGRAM_BOT_TOKEN is required")
	}

	apiBase := config.ConfigDefault("API_BASE_URL", "http://localhost:8080")
	webAppURL := config.Config("WEBAPP_URL")

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatalf("🔥 Failed to connect to Telegram: %v", err)
	}
	log.Printf("✅ Bot running as @%s", bot.Self.UserName)

	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30

	for update := range bot.GetUpdatesChan(updateConfig) {
		if update.Message == nil || !update.Message.IsCommand() {
			continue
		}

		switch update.Message.Command() {
		case "start":
			handleStart(bot, apiBase, webAppURL, update.Message)
		case "help":
			reply := tgbotapi.NewMessage(update.Message.Chat.ID,
				"Send /start to begin Queen Makeda's Quest. Complete tasks, invite friends and climb the leaderboard!")
			if _, err := bot.Send(reply); err != nil {
				log.Printf("Error sending help reply: %v", err)
			}
		}
	}
}

func handleStart(bot *tgbotapi.BotAPI, apiBase, webAppURL string, msg *tgbotapi.Message) {
	from := msg.From
	if from == nil {
		return
	}

	payload := authRequest{
		TelegramID:   from.ID,
		Username:     from.UserName,
		FirstName:    from.FirstName,
		LastName:     from.LastName,
		ReferralCode: msg.CommandArguments(),
	}

	if err := registerStart(apiBase, payload); err != nil {
		log.Printf("Error forwarding start event for %d: %v", from.ID, err)
	}

	reply := tgbotapi.NewMessage(msg.Chat.ID,
		fmt.Sprintf("Welcome to Queen Makeda's Quest, %s! 👑\nComplete tasks to earn points and unlock levels.", from.FirstName))
	if webAppURL != "" {
		reply.ReplyMarkup = questKeyboard(webAppURL)
	}

	if _, err := bot.Send(reply); err != nil {
		log.Printf("Error sending start reply: %v", err)
	}
}

// questKeyboard builds the inline button into the mini-app. A plain URL
// button; Telegram opens t.me mini-app links in-place.
func questKeyboard(webAppURL string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("⚔️ Start the Quest", webAppURL),
		),
	)
}

func registerStart(apiBase string, payload authRequest) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	resp, err := client.Post(apiBase+"/api/auth/telegram", "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth endpoint returned %s", resp.Status)
	}
	return nil
}
