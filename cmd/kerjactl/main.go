// Command kerjactl работает с данными Kerjaku напрямую через хранилище:
// поиск работников и вакансий, экспорт и импорт коллекций CMS, хеш пароля админа.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/kerjaku-backend/internal/cms"
	"github.com/ignatzorin/kerjaku-backend/internal/config"
	"github.com/ignatzorin/kerjaku-backend/internal/logger"
	"github.com/ignatzorin/kerjaku-backend/internal/storage"
)

var (
	// Глобальные флаги
	storageDriver string
	dataDir       string
	verbose       bool
	timeout       time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "kerjactl",
	Short: "Утилита администрирования Kerjaku",
	Long: `kerjactl открывает то же хранилище, что и сервер, и позволяет
искать работников и вакансии, выгружать и загружать коллекции CMS
и готовить хеш пароля администратора.

Хранилище берётся из переменных окружения (STORAGE_DRIVER, DATA_DIR, ...),
флаги --driver и --data-dir их переопределяют.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := "warn"
		if verbose {
			level = "debug"
		}
		logger.Init(level)
		logger.SetTextFormatter()
		logger.SetOutput(os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&storageDriver, "driver", "", "Драйвер хранилища: memory, file, sqlite, postgres")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Каталог данных для драйвера file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Подробные логи")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Таймаут операции")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(cmsCmd)
	rootCmd.AddCommand(adminCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// commandContext возвращает контекст команды с таймаутом --timeout.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// loadConfig читает конфигурацию сервера и применяет флаги хранилища.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if storageDriver != "" {
		cfg.StorageDriver = storageDriver
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, nil
}

// openRegistry открывает хранилище и реестр коллекций поверх него.
func openRegistry(ctx context.Context) (*cms.Registry, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	opened, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("kerjactl: не удалось открыть хранилище %s: %w", cfg.StorageDriver, err)
	}

	closeFn := func() {
		if err := opened.Close(); err != nil {
			logger.Warn("kerjactl: ошибка закрытия хранилища", map[string]interface{}{"error": err.Error()})
		}
	}
	return cms.NewRegistry(opened.KV), closeFn, nil
}
