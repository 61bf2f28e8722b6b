package bot

import (
	"context"
	"errors"
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/sirupsen/logrus"

	"toolscout/internal/config"
	"toolscout/internal/domain"
	"toolscout/internal/scraper"
	"toolscout/internal/storage"
)

const (
	welcomeMessage = "Welcome to Toolscout! Send me the website of an AI tool and I'll add it to the directory.\n\n" +
		"/list shows recent tools\n/delete <url> removes one\n/cache shows the scrape cache size\n/clearcache empties it"
	usageMessage = "Send me a link starting with http:// or https://, or use /start for help."

	// listLimit caps how many products /list shows.
	listLimit = 10
)

// Handler holds dependencies for the Telegram bot handlers.
type Handler struct {
	bot     *tgbot.Bot
	cfg     config.Config
	repo    storage.Repository
	scraper scraper.Scraper
	log     logrus.FieldLogger
}

// NewHandler creates a new bot handler instance.
func NewHandler(cfg config.Config, repo storage.Repository, scraper scraper.Scraper, logger logrus.FieldLogger) (*Handler, error) {
	h := newHandler(cfg, repo, scraper, logger)

	b, err := tgbot.New(cfg.TelegramBotToken, tgbot.WithDefaultHandler(h.defaultHandler))
	if err != nil {
		h.log.WithError(err).Error("Failed to create Telegram bot instance")
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	h.bot = b
	h.registerHandlers()

	h.log.Info("Telegram bot handler initialized")
	return h, nil
}

func newHandler(cfg config.Config, repo storage.Repository, scraper scraper.Scraper, logger logrus.FieldLogger) *Handler {
	return &Handler{
		cfg:     cfg,
		repo:    repo,
		scraper: scraper,
		log:     logger.WithField("component", "bot_handler"),
	}
}

// registerHandlers sets up the command handlers. Everything else goes to
// the default handler.
func (h *Handler) registerHandlers() {
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/start", tgbot.MatchTypeExact, h.startHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/list", tgbot.MatchTypeExact, h.listHandler)
	h.bot.RegisterHandlerMatchFunc(matchCommand("/delete"), h.deleteHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/cache", tgbot.MatchTypeExact, h.cacheHandler)
	h.bot.RegisterHandler(tgbot.HandlerTypeMessageText, "/clearcache", tgbot.MatchTypeExact, h.clearCacheHandler)
	h.log.Info("Registered command handlers")
}

// Start begins polling for updates from Telegram.
// This function blocks until the context is cancelled.
func (h *Handler) Start(ctx context.Context) {
	h.log.Info("Starting Telegram bot polling...")
	h.bot.Start(ctx)
	h.log.Info("Telegram bot polling stopped.")
}

func (h *Handler) reply(ctx context.Context, b *tgbot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   text,
	})
	if err != nil {
		h.log.WithError(err).WithField("chat_id", update.Message.Chat.ID).Error("Failed to send message")
	}
}

func (h *Handler) startHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.log.WithFields(logrus.Fields{
		"user_id": senderID(update.Message),
		"command": "/start",
	}).Info("Received /start command")
	h.reply(ctx, b, update, welcomeMessage)
}

func (h *Handler) listHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	products, err := h.repo.ListProducts(ctx)
	if err != nil {
		h.reply(ctx, b, update, "Sorry, I couldn't load the directory right now.")
		return
	}
	h.reply(ctx, b, update, formatProductList(products, listLimit))
}

func (h *Handler) deleteHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	target := findURL(commandArgs(update.Message.Text))
	if target == "" {
		h.reply(ctx, b, update, "Usage: /delete <url>")
		return
	}
	h.reply(ctx, b, update, h.deleteProduct(ctx, target))
}

func (h *Handler) cacheHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.reply(ctx, b, update, fmt.Sprintf("The scrape cache holds %d result(s).", h.scraper.CacheSize()))
}

func (h *Handler) clearCacheHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.scraper.ClearCache()
	h.reply(ctx, b, update, "Scrape cache cleared.")
}

// defaultHandler scrapes the first URL in a message and saves it as a product.
func (h *Handler) defaultHandler(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Text == "" {
		return
	}
	msg := update.Message
	log := h.log.WithField("user_id", senderID(msg))

	target := findURL(msg.Text)
	if target == "" {
		log.Debug("Received message without a URL")
		h.reply(ctx, b, update, usageMessage)
		return
	}

	h.reply(ctx, b, update, "Scraping "+target+" ...")
	product, err := h.submit(ctx, senderID(msg), target)
	if err != nil {
		h.reply(ctx, b, update, scrapeFailureMessage(err))
		return
	}
	h.reply(ctx, b, update, formatProductReply(product))
}

// submit scrapes rawURL and stores the resulting product.
func (h *Handler) submit(ctx context.Context, userID int64, rawURL string) (domain.Product, error) {
	log := h.log.WithFields(logrus.Fields{"user_id": userID, "url": rawURL})

	meta, err := h.scraper.Scrape(ctx, rawURL, true)
	if err != nil {
		log.WithError(err).Warn("Scrape failed")
		return domain.Product{}, err
	}

	product := domain.NewProduct(meta, userID)
	if err := h.repo.SaveProduct(ctx, product); err != nil {
		return domain.Product{}, err
	}
	log.WithField("product_id", product.ID).Info("Product submitted")
	return product, nil
}

func (h *Handler) deleteProduct(ctx context.Context, rawURL string) string {
	if _, err := h.repo.GetProduct(ctx, rawURL); err != nil {
		if errors.Is(err, storage.ErrProductNotFound) {
			return "No tool is saved for " + rawURL
		}
		return "Sorry, I couldn't delete that right now."
	}
	if err := h.repo.DeleteProduct(ctx, rawURL); err != nil {
		return "Sorry, I couldn't delete that right now."
	}
	return "Deleted " + rawURL
}

func matchCommand(command string) tgbot.MatchFunc {
	return func(update *models.Update) bool {
		return update.Message != nil && isCommand(update.Message.Text, command)
	}
}

func senderID(msg *models.Message) int64 {
	if msg.From == nil {
		return 0
	}
	return msg.From.ID
}
