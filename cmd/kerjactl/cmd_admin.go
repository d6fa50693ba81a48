package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/kerjaku-backend/internal/service"
)

var adminPassword string

// adminCmd is the parent command for admin helpers
var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Настройка доступа администратора",
}

var adminHashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Сгенерировать bcrypt-хеш для ADMIN_PASSWORD_HASH",
	Long: `Печатает bcrypt-хеш пароля администратора. Пароль берётся из --password
или читается первой строкой из stdin.`,
	Example: `  echo 'rahasia123' | kerjactl admin hash-password`,
	Args:    cobra.NoArgs,
	RunE:    runAdminHashPassword,
}

func init() {
	adminHashPasswordCmd.Flags().StringVar(&adminPassword, "password", "", "Пароль администратора")
	adminCmd.AddCommand(adminHashPasswordCmd)
}

func runAdminHashPassword(cmd *cobra.Command, args []string) error {
	password := adminPassword
	if password == "" {
		line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && line == "" {
			return fmt.Errorf("kerjactl: пароль не передан")
		}
		password = strings.TrimRight(line, "\r\n")
	}

	hash, err := service.HashAdminPassword(password)
	if err != nil {
		return err
	}
	writeLine(cmd.OutOrStdout(), "ADMIN_PASSWORD_HASH=%s", hash)
	return nil
}
