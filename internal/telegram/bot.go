package telegram

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meal-concierge/internal/app"
	"meal-concierge/internal/config"
	"meal-concierge/internal/logger"
	"meal-concierge/internal/planner"
)

const helpText = "🍽 *Meal Concierge*\n\n" +
	"`/plan calories=1800 days=3 meals_per_day=3`\n" +
	"`/plan tdee=2400 goal=maintain cuisine=mexican`\n" +
	"`/plan sex=female weight_lb=150 height_in=65 age=32 activity=light`\n\n" +
	"Other keys: `chain`, `protein_strategy` (percent|per_lb), `protein_percent`, `protein_per_lb`, `seed`."

// planTimeout bounds a single plan request, including the optional coach call.
const planTimeout = 45 * time.Second

// Concierge is the part of the app the bot drives.
type Concierge interface {
	GeneratePlan(ctx context.Context, req app.PlanRequest) (*planner.MealPlan, error)
	Metrics(ctx context.Context, days int) (*app.MetricsReport, error)
}

type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	HandleUpdate(r *http.Request) (*tgbotapi.Update, error)
}

// Bot wraps the Telegram API and the meal concierge.
type Bot struct {
	api       botAPI
	concierge Concierge
	cfg       *config.Config
	log       *logger.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, concierge Concierge, log *logger.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	log.Info("telegram authorized", "account", api.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Info("webhook set", "description", resp.Description)

	return newBot(api, cfg, concierge, log), nil
}

func newBot(api botAPI, cfg *config.Config, concierge Concierge, log *logger.Logger) *Bot {
	return &Bot{api: api, concierge: concierge, cfg: cfg, log: log}
}

// RegisterHandlers registers the webhook and health handlers on mux.
func (b *Bot) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", b.handleWebhook)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		b.log.Warn("failed to parse update", "error", err)
		return
	}

	if update.Message == nil || update.Message.From == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		b.log.Warn("unauthorized access attempt", "user_id", update.Message.From.ID, "username", update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	if userID == b.cfg.AdminTelegramID && userID != 0 {
		return true
	}
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch msg.Command() {
	case "metrics":
		b.handleMetricsRequest(msg)
	case "plan":
		b.handlePlanRequest(msg)
	default:
		b.reply(msg.Chat.ID, helpText)
	}
}

func (b *Bot) handleMetricsRequest(msg *tgbotapi.Message) {
	if msg.From.ID != b.cfg.AdminTelegramID {
		b.reply(msg.Chat.ID, "⛔ *Access Denied*: Admin only.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	report, err := b.concierge.Metrics(ctx, 7)
	if err != nil {
		b.log.Error("failed to collect metrics", "error", err)
		b.reply(msg.Chat.ID, "❌ Error fetching metrics.")
		return
	}
	b.reply(msg.Chat.ID, formatMetricsMarkdown(report))
}

func (b *Bot) handlePlanRequest(msg *tgbotapi.Message) {
	statusMsg := tgbotapi.NewMessage(msg.Chat.ID, "🧑‍🍳 *Building your plan...*")
	statusMsg.ParseMode = tgbotapi.ModeMarkdown
	sent, err := b.api.Send(statusMsg)
	if err != nil {
		b.log.Error("failed to send initial reply", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), planTimeout)
	defer cancel()

	req := app.RequestFromMap(parseArgs(msg.CommandArguments()))
	plan, err := b.concierge.GeneratePlan(ctx, req)

	var text string
	if err != nil {
		b.log.Error("plan generation failed", "user_id", msg.From.ID, "error", err)
		text = "❌ *Error generating plan.* Please try again later."
		if errors.Is(err, planner.ErrNoCatalog) {
			b.sendAdminAlert("⚠️ *No catalog loaded*: plan requests are failing.")
			text = "❌ *Error generating plan:* the menu is not loaded yet."
		}
	} else {
		text = formatPlanMarkdown(plan)
	}

	edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, text)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.log.Error("failed to send plan", "error", err)
	}
}

// parseArgs reads "key=value" tokens. Keys are lowercased and dashes become underscores;
// tokens without '=' are ignored.
func parseArgs(args string) map[string]string {
	kv := make(map[string]string)
	for _, field := range strings.Fields(args) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key == "" {
			continue
		}
		key = strings.ReplaceAll(strings.ToLower(key), "-", "_")
		kv[key] = value
	}
	return kv
}

func formatPlanMarkdown(plan *planner.MealPlan) string {
	var sb strings.Builder
	sb.WriteString("📅 *Meal Plan*\n")
	t := plan.Targets
	fmt.Fprintf(&sb, "🎯 %d kcal · %dg P · %dg C · %dg F\n", t.Calories, t.ProteinG, t.CarbG, t.FatG)
	if plan.Note != "" {
		fmt.Fprintf(&sb, "_%s_\n", escape(plan.Note))
	}

	for _, day := range plan.Plan {
		fmt.Fprintf(&sb, "\n*Day %d*: %d kcal · %dg P · %dg C · %dg F\n",
			day.Day, day.Totals.Calories, day.Totals.ProteinG, day.Totals.CarbsG, day.Totals.FatG)
		if len(day.Items) == 0 {
			sb.WriteString("_No menu items available_\n")
		}
		for _, it := range day.Items {
			fmt.Fprintf(&sb, "• %s (%s) %d kcal\n", escape(it.Name), escape(it.Chain), it.Calories)
		}
	}

	if plan.CoachNote != "" {
		fmt.Fprintf(&sb, "\n💬 %s\n", escape(plan.CoachNote))
	}
	fmt.Fprintf(&sb, "\n`seed=%d`", plan.Seed)
	return sb.String()
}

func formatMetricsMarkdown(r *app.MetricsReport) string {
	var sb strings.Builder
	sb.WriteString("📊 *Usage & Health Report*\n\n")

	sb.WriteString("🥗 *Plans (7 days)*\n")
	if r.Plans.Runs == 0 {
		sb.WriteString("_No plans yet_\n")
	} else {
		fmt.Fprintf(&sb, "• Runs: %d\n", r.Plans.Runs)
		fmt.Fprintf(&sb, "• Avg score: %.1f\n", r.Plans.AvgScore)
		fmt.Fprintf(&sb, "• Avg calorie error: %.0f kcal\n", r.Plans.AvgCalorieError)
		fmt.Fprintf(&sb, "• Avg latency: %.0f ms\n", r.Plans.AvgLatencyMS)
	}
	fmt.Fprintf(&sb, "• Catalog items: %d\n", r.CatalogItems)

	sb.WriteString("\n🗓 *Recent LLM Activity*\n")
	if len(r.Usage) == 0 {
		sb.WriteString("_No data yet_\n")
	}
	for _, d := range r.Usage {
		fmt.Fprintf(&sb, "• *%s*: %d tokens (%d execs)\n", d.Date, d.TotalPrompt+d.TotalCompletion, d.TotalExecution)
	}

	h := r.System
	sb.WriteString("\n🧠 *System Health*\n")
	fmt.Fprintf(&sb, "• RAM: %dMB (Alloc) / %dMB (Sys)\n", h.AllocMB, h.SysMB)
	fmt.Fprintf(&sb, "• Goroutines: %d\n", h.Goroutines)
	fmt.Fprintf(&sb, "• Uptime: %s\n", h.Uptime)
	fmt.Fprintf(&sb, "• Disk Data: %s\n", h.DataDiskSize)
	return sb.String()
}

func escape(s string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, s)
}

func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

func (b *Bot) sendAdminAlert(text string) {
	if b.cfg.AdminTelegramID == 0 {
		return
	}
	b.reply(b.cfg.AdminTelegramID, text)
}
