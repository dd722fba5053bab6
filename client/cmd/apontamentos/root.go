package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/capacityx/apontamentos/client/internal/api"
	"github.com/capacityx/apontamentos/client/internal/config"
	"github.com/capacityx/apontamentos/client/internal/session"
	"github.com/capacityx/apontamentos/client/internal/tui"
)

// newRootCmd создает корневую команду: без подкоманды запускается TUI.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "apontamentos",
		Short:         "Клиент учета рабочего времени (apontamentos)",
		Long:          "Терминальный клиент для просмотра, создания, редактирования и удаления записей /apontamento.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runTUI,
	}
	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func runTUI(cmd *cobra.Command, _ []string) error {
	cfg, closeLog, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	return tui.Start(tui.Options{
		Session:   session.NewStore(session.DefaultUsers()),
		Client:    newAPIClient(cfg),
		ServerURL: cfg.ServerURL,
		Debug:     cfg.Debug,
	})
}

// prepare читает конфигурацию и настраивает логирование для любой команды.
func prepare(cmd *cobra.Command) (*config.Config, func(), error) {
	cfg, err := config.Load(cmd.Flags())
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка конфигурации: %w", err)
	}
	closeLog, err := setupLogging(cfg.LogDir)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("Запуск apontamentos",
		"command", cmd.Name(),
		"server_url", cfg.ServerURL,
		"timeout", cfg.Timeout,
		"debug_mode", cfg.Debug,
		"version", version,
	)
	return cfg, closeLog, nil
}

// newAPIClient создает шлюз; нулевой таймаут оставляет значение HTTP-клиента по умолчанию.
func newAPIClient(cfg *config.Config) api.Client {
	var opts []api.Option
	if cfg.Timeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.Timeout))
	}
	return api.NewHTTPClient(cfg.ServerURL, opts...)
}
