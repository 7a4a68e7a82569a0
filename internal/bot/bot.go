package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bot-precos/internal/account"
	"bot-precos/internal/item"
	"bot-precos/internal/models"
	"bot-precos/internal/monitor"
	"bot-precos/internal/store"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Init inicializa o cliente da API do Telegram
func Init(token string, logger *slog.Logger) (*tgbotapi.BotAPI, error) {
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN não configurado. Verifique o arquivo .env")
	}

	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		if err.Error() == "Unauthorized" {
			return nil, fmt.Errorf("token do Telegram inválido ou expirado. Verifique o TELEGRAM_BOT_TOKEN no arquivo .env. Para obter um token, fale com @BotFather no Telegram")
		}
		return nil, fmt.Errorf("erro ao conectar com Telegram: %w", err)
	}

	api.Debug = false
	logger.Info("Bot autorizado", slog.String("username", api.Self.UserName))
	return api, nil
}

// Sender envia mensagens ao Telegram. *tgbotapi.BotAPI satisfaz a interface.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// History é o histórico de preços consultado pelos comandos
type History interface {
	SaveItem(ctx context.Context, it *item.Item) (int64, error)
	ListTracked(ctx context.Context) ([]models.ItemRecord, error)
}

// Deps reúne os serviços usados pelos comandos
type Deps struct {
	Tracker  *item.Tracker
	Accounts *account.Manager
	Registry *store.Registry
	History  History
	Monitor  *monitor.Monitor
}

// Bot atende os comandos recebidos pelo Telegram
type Bot struct {
	api              Sender
	deps             Deps
	authorizedChatID int64
	logger           *slog.Logger
}

// New cria o bot. authorizedChatID igual a zero libera qualquer chat.
func New(api Sender, deps Deps, authorizedChatID int64, logger *slog.Logger) *Bot {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bot{
		api:              api,
		deps:             deps,
		authorizedChatID: authorizedChatID,
		logger:           logger,
	}
}

// Run processa as atualizações até o canal fechar ou o contexto terminar
func (b *Bot) Run(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || update.Message.Text == "" {
				continue
			}
			b.Handle(ctx, update.Message)
		}
	}
}

// Handle responde a uma mensagem recebida
func (b *Bot) Handle(ctx context.Context, message *tgbotapi.Message) {
	command, args := parseCommand(message.Text)
	if command == "" {
		return
	}

	chatID := message.Chat.ID

	// Comandos públicos (não precisam de autorização)
	isPublicCommand := command == "/start" || command == "/help"
	if !isPublicCommand && b.authorizedChatID != 0 && chatID != b.authorizedChatID {
		b.send(chatID, Reply{Text: "Você não está autorizado a usar este bot."})
		return
	}

	// Senhas não devem ficar no histórico do chat
	if command == "/register" || command == "/login" {
		if _, err := b.api.Send(tgbotapi.NewDeleteMessage(chatID, message.MessageID)); err != nil {
			b.logger.Warn("erro ao apagar mensagem com senha", slog.Any("error", err))
		}
	}

	b.send(chatID, b.Respond(ctx, command, args))
}

// send envia a resposta em HTML e, se o Telegram recusar, sem formatação
func (b *Bot) send(chatID int64, r Reply) {
	msg := tgbotapi.NewMessage(chatID, r.Text)
	if r.HTML {
		msg.ParseMode = tgbotapi.ModeHTML
	}
	if _, err := b.api.Send(msg); err != nil {
		if !r.HTML {
			b.logger.Error("erro ao enviar mensagem", slog.Any("error", err))
			return
		}
		b.logger.Warn("erro ao enviar mensagem com HTML", slog.Any("error", err))
		msg.ParseMode = ""
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("erro ao enviar mensagem sem formatação", slog.Any("error", err))
		}
	}
}

// parseCommand separa o comando (sem @botname) dos argumentos
func parseCommand(text string) (string, []string) {
	parts := strings.Fields(text)
	if len(parts) == 0 || !strings.HasPrefix(parts[0], "/") {
		return "", nil
	}

	command := strings.ToLower(parts[0])
	if idx := strings.Index(command, "@"); idx > 0 {
		command = command[:idx]
	}
	return command, parts[1:]
}
