package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bot-precos/internal/account"
)

var registerCmd = &cobra.Command{
	Use:   "register <email>",
	Short: "Cria uma conta; a senha é pedida no terminal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if services == nil {
			return errNotConfigured
		}

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		if err := services.Accounts.Register(cmd.Context(), args[0], account.ClientHash(password)); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Cadastro realizado!")
		return nil
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Confere e-mail e senha de uma conta",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if services == nil {
			return errNotConfigured
		}

		password, err := readPassword(cmd)
		if err != nil {
			return err
		}
		if err := services.Accounts.Login(cmd.Context(), args[0], account.ClientHash(password)); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "✅ Login realizado com sucesso!")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(loginCmd)
}
