package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"bot-precos/internal/account"
)

// Reply é o texto de resposta de um comando
type Reply struct {
	Text string
	HTML bool
}

// Respond executa o comando e monta a resposta, sem falar com o Telegram
func (b *Bot) Respond(ctx context.Context, command string, args []string) Reply {
	switch command {
	case "/start", "/help":
		return Reply{Text: helpText, HTML: true}
	case "/track":
		return b.handleTrack(ctx, args)
	case "/stores":
		return b.handleStores()
	case "/list":
		return b.handleList(ctx)
	case "/recheck":
		return b.handleRecheck(ctx)
	case "/register":
		return b.handleRegister(ctx, args)
	case "/login":
		return b.handleLogin(ctx, args)
	default:
		return Reply{Text: "Comando não reconhecido. Use /help para ver os comandos disponíveis."}
	}
}

func (b *Bot) handleTrack(ctx context.Context, args []string) Reply {
	if len(args) < 2 {
		return Reply{Text: "❌ Formato incorreto.\n\nUso: /track <loja> <URL> [nome]\n\nExemplo: /track amazon https://www.amazon.com/dp/B000 Cadeira"}
	}

	s, ok := b.deps.Registry.Lookup(args[0])
	if !ok {
		return Reply{Text: fmt.Sprintf("❌ Loja %q não configurada. Use /stores para ver as lojas disponíveis.", args[0])}
	}

	url := args[1]
	name := strings.Join(args[2:], " ")
	if name == "" {
		name = url
	}

	it, err := b.deps.Tracker.Create(ctx, name, url, s)
	if err != nil {
		return Reply{Text: ErrorMessage(err)}
	}

	if _, err := b.deps.History.SaveItem(ctx, it); err != nil {
		b.logger.Error("erro ao salvar preço", slog.Any("error", err))
		return Reply{Text: ErrorMessage(err)}
	}

	return Reply{
		Text: fmt.Sprintf(
			"✅ Produto adicionado com sucesso!\n\n"+
				"📦 <b>%s</b>\n"+
				"🏬 Loja: %s\n"+
				"💰 Preço atual: <b>%s</b>\n"+
				"🔗 %s",
			escapeHTML(it.Name()), escapeHTML(s.Name()), it.Price(), escapeHTML(it.URL()),
		),
		HTML: true,
	}
}

func (b *Bot) handleStores() Reply {
	stores := b.deps.Registry.All()
	if len(stores) == 0 {
		return Reply{Text: "🏬 Nenhuma loja configurada."}
	}

	var response strings.Builder
	response.WriteString("🏬 <b>Lojas disponíveis:</b>\n\n")
	for _, s := range stores {
		response.WriteString(fmt.Sprintf("<b>%s</b>\n", escapeHTML(s.Name())))
		response.WriteString(fmt.Sprintf("🔎 <code>%s</code>\n", escapeHTML(s.Selector())))
		if hosts := s.Hosts(); len(hosts) > 0 {
			response.WriteString(fmt.Sprintf("🌐 %s\n", escapeHTML(strings.Join(hosts, ", "))))
		}
		response.WriteString("\n")
	}
	return Reply{Text: response.String(), HTML: true}
}

func (b *Bot) handleList(ctx context.Context) Reply {
	records, err := b.deps.History.ListTracked(ctx)
	if err != nil {
		b.logger.Error("erro ao listar produtos", slog.Any("error", err))
		return Reply{Text: ErrorMessage(err)}
	}

	if len(records) == 0 {
		return Reply{Text: "📋 Nenhum produto sendo monitorado no momento."}
	}

	var response strings.Builder
	response.WriteString("📋 <b>Produtos em Monitoramento:</b>\n\n")
	for _, r := range records {
		response.WriteString(fmt.Sprintf("📦 <b>%s</b> (%s)\n", escapeHTML(r.Name), escapeHTML(r.Store)))
		response.WriteString(fmt.Sprintf("💰 Preço: %s\n", escapeHTML(r.Price)))
		response.WriteString(fmt.Sprintf("🕐 Última verificação: %s\n", r.CheckedAt.Local().Format("02/01/2006 15:04")))
		response.WriteString(fmt.Sprintf("🔗 %s\n\n", escapeHTML(r.URL)))
	}
	return Reply{Text: response.String(), HTML: true}
}

func (b *Bot) handleRecheck(ctx context.Context) Reply {
	outcomes, err := b.deps.Monitor.CheckAll(ctx)
	if err != nil {
		b.logger.Error("erro ao verificar produtos", slog.Any("error", err))
		return Reply{Text: ErrorMessage(err)}
	}

	if len(outcomes) == 0 {
		return Reply{Text: "📋 Nenhum produto sendo monitorado no momento."}
	}

	var response strings.Builder
	response.WriteString("📊 <b>Verificação concluída:</b>\n\n")
	for _, o := range outcomes {
		name := escapeHTML(o.Previous.Name)
		switch {
		case o.Err != nil:
			response.WriteString(fmt.Sprintf("⚠️ %s: %s\n", name, escapeHTML(ErrorMessage(o.Err))))
		case o.Changed():
			response.WriteString(fmt.Sprintf("🔔 %s: %s → <b>%s</b>\n", name, escapeHTML(o.Previous.Price), o.Item.Price()))
		default:
			response.WriteString(fmt.Sprintf("✅ %s: %s (sem alteração)\n", name, o.Item.Price()))
		}
	}
	return Reply{Text: response.String(), HTML: true}
}

func (b *Bot) handleRegister(ctx context.Context, args []string) Reply {
	if len(args) != 2 {
		return Reply{Text: "❌ Formato incorreto.\n\nUso: /register <email> <senha>"}
	}

	if err := b.deps.Accounts.Register(ctx, args[0], account.ClientHash(args[1])); err != nil {
		return Reply{Text: ErrorMessage(err)}
	}
	return Reply{Text: "✅ Cadastro realizado! Use /login para entrar."}
}

func (b *Bot) handleLogin(ctx context.Context, args []string) Reply {
	if len(args) != 2 {
		return Reply{Text: "❌ Formato incorreto.\n\nUso: /login <email> <senha>"}
	}

	if err := b.deps.Accounts.Login(ctx, args[0], account.ClientHash(args[1])); err != nil {
		return Reply{Text: ErrorMessage(err)}
	}
	return Reply{Text: "✅ Login realizado com sucesso!"}
}
