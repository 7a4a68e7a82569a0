// Package cli é a interface de linha de comando do monitor de preços.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"bot-precos/internal/account"
	"bot-precos/internal/bot"
	"bot-precos/internal/item"
	"bot-precos/internal/models"
	"bot-precos/internal/store"
)

// History é o histórico de preços usado pelos comandos
type History interface {
	SaveItem(ctx context.Context, it *item.Item) (int64, error)
	ListItems(ctx context.Context) ([]models.ItemRecord, error)
}

// Services reúne as dependências dos comandos
type Services struct {
	Tracker  *item.Tracker
	Accounts *account.Manager
	Registry *store.Registry
	History  History
}

var services *Services

// SetServices configura as dependências usadas pelos comandos
func SetServices(s *Services) {
	services = s
}

var errNotConfigured = errors.New("serviços não configurados")

var rootCmd = &cobra.Command{
	Use:           "tracker",
	Short:         "tracker busca e guarda preços de produtos em lojas online",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute roda o comando e escreve o erro, traduzido, em stderr
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), errorText(err))
	}
	return err
}

func errorText(err error) string {
	if msg, ok := bot.Describe(err); ok {
		return msg
	}
	return "❌ " + err.Error()
}

func newTable(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(w)
	return t
}

// readPassword lê a senha sem eco quando a entrada é um terminal
func readPassword(cmd *cobra.Command) (string, error) {
	cmd.Print("Senha: ")
	defer cmd.Println()

	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		password, err := term.ReadPassword(int(os.Stdin.Fd()))
		if err != nil {
			return "", fmt.Errorf("erro ao ler senha: %w", err)
		}
		return string(password), nil
	}

	input, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("erro ao ler senha: %w", err)
	}
	return strings.TrimRight(input, "\r\n"), nil
}
