package bot

import (
	"errors"
	"fmt"
	"strings"

	"bot-precos/internal/account"
	"bot-precos/internal/fetcher"
	"bot-precos/internal/markup"
	"bot-precos/internal/price"
)

const helpText = `🤖 <b>Bot de Monitoramento de Preços</b>

<b>Comandos disponíveis:</b>

<b>/track &lt;loja&gt; &lt;URL&gt; [nome]</b> - Buscar o preço de um produto e salvar no histórico
Exemplo: /track amazon https://www.amazon.com/dp/B000 Cadeira

<b>/stores</b> - Listar as lojas configuradas

<b>/list</b> - Listar os produtos monitorados e o último preço

<b>/recheck</b> - Verificar agora o preço de todos os produtos

<b>/register &lt;email&gt; &lt;senha&gt;</b> - Criar uma conta

<b>/login &lt;email&gt; &lt;senha&gt;</b> - Entrar com uma conta existente

<b>/help</b> - Mostrar esta mensagem de ajuda
`

// ErrorMessage traduz um erro em uma mensagem para o usuário.
// Cada tipo de falha tem um texto próprio.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	if msg, ok := Describe(err); ok {
		return msg
	}
	return "❌ Erro interno. Tente novamente mais tarde."
}

// Describe retorna a mensagem de um erro conhecido e false para os demais
func Describe(err error) (string, bool) {
	var fetchErr *fetcher.Error

	switch {
	case errors.Is(err, fetcher.ErrInvalidURL):
		return "❌ URL inválida. Envie um endereço completo começando com http:// ou https://.", true
	case errors.Is(err, fetcher.ErrTimeout):
		return "❌ A loja demorou demais para responder. Tente novamente mais tarde.", true
	case errors.As(err, &fetchErr) && fetchErr.StatusCode != 0:
		return fmt.Sprintf("❌ A loja respondeu com erro HTTP %d (%s).", fetchErr.StatusCode, fetcher.StatusText(fetchErr.StatusCode)), true
	case errors.Is(err, fetcher.ErrFetch):
		return "❌ Não foi possível acessar a página do produto.", true
	case errors.Is(err, markup.ErrElementNotFound):
		return "❌ Não encontrei o preço na página. A loja pode ter mudado o layout.", true
	case errors.Is(err, price.ErrPriceNotFound):
		return "❌ Encontrei o elemento de preço, mas ele não contém um valor válido.", true
	case errors.Is(err, account.ErrEmailInvalid):
		return "❌ E-mail inválido.", true
	case errors.Is(err, account.ErrAlreadyRegistered):
		return "❌ Este e-mail já está cadastrado.", true
	case errors.Is(err, account.ErrNotFound):
		return "❌ Nenhuma conta encontrada com este e-mail.", true
	case errors.Is(err, account.ErrWrongPassword):
		return "❌ Senha incorreta.", true
	default:
		return "", false
	}
}

// escapeHTML escapa caracteres especiais do HTML
func escapeHTML(text string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;").Replace(text)
}
