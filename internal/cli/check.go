package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkName string

var checkCmd = &cobra.Command{
	Use:   "check <store> <url>",
	Short: "Busca o preço atual de um produto e salva no histórico",
	Long: `Baixa a página do produto, localiza o elemento de preço descrito pela loja
e salva o preço no histórico. Sem --name, a URL é usada como nome.`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&checkName, "name", "n", "", "nome do produto")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	if services == nil {
		return errNotConfigured
	}

	s, ok := services.Registry.Lookup(args[0])
	if !ok {
		return fmt.Errorf("loja %q não configurada, veja 'tracker stores'", args[0])
	}

	name := checkName
	if name == "" {
		name = args[1]
	}

	it, err := services.Tracker.Create(cmd.Context(), name, args[1], s)
	if err != nil {
		return err
	}

	id, err := services.History.SaveItem(cmd.Context(), it)
	if err != nil {
		return fmt.Errorf("erro ao salvar preço: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (loja %s, registro %d)\n", it.Name(), it.Price(), s.Name(), id)
	return nil
}
