package cli

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "Lista as lojas configuradas",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if services == nil {
			return errNotConfigured
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"Loja", "Seletor", "Domínios"})
		for _, s := range services.Registry.All() {
			t.AppendRow(table.Row{s.Name(), s.Selector(), strings.Join(s.Hosts(), ", ")})
		}
		t.Render()
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Mostra todos os preços salvos, do mais recente ao mais antigo",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if services == nil {
			return errNotConfigured
		}

		records, err := services.History.ListItems(cmd.Context())
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nenhum preço salvo ainda.")
			return nil
		}

		t := newTable(cmd.OutOrStdout())
		t.AppendHeader(table.Row{"ID", "Produto", "Loja", "Preço", "Verificado em", "URL"})
		for _, r := range records {
			t.AppendRow(table.Row{r.ID, r.Name, r.Store, r.Price, r.CheckedAt.Local().Format("02/01/2006 15:04"), r.URL})
		}
		t.Render()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(storesCmd)
	rootCmd.AddCommand(historyCmd)
}
