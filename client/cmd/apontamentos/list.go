package main

import (
	"fmt"
	"io"
	"log/slog"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/models"
)

const (
	flagSearch   = "search"
	flagWindow   = "window"
	flagGarantia = "garantia"
)

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Вывести активные записи без запуска TUI",
		Args:  cobra.NoArgs,
		RunE:  runList,
	}
	listCmd.Flags().String(flagSearch, "", "Поиск по проекту или описанию (без учета регистра)")
	listCmd.Flags().String(flagWindow, "", "Период: 7 или 30 дней (по умолчанию все записи)")
	listCmd.Flags().String(flagGarantia, "", "Фильтр по гарантии: true или false")
	return listCmd
}

func runList(cmd *cobra.Command, _ []string) error {
	filter, search, err := listFilterFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, closeLog, err := prepare(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := listing.New(newAPIClient(cfg), listing.WithFilter(filter))
	ctrl.SetSearch(search)
	if err = ctrl.Fetch(cmd.Context()); err != nil {
		return err
	}

	records := ctrl.VisibleRecords()
	slog.Info("Вывод списка записей", "count", len(records), "search", search)
	return printList(cmd.OutOrStdout(), records)
}

// listFilterFromFlags собирает фильтр списка из флагов команды.
func listFilterFromFlags(cmd *cobra.Command) (listing.Filter, string, error) {
	var f listing.Filter
	flags := cmd.Flags()

	search, err := flags.GetString(flagSearch)
	if err != nil {
		return f, "", err
	}
	rawWindow, err := flags.GetString(flagWindow)
	if err != nil {
		return f, "", err
	}
	rawGarantia, err := flags.GetString(flagGarantia)
	if err != nil {
		return f, "", err
	}

	if f.Window, err = listing.ParseTimeWindow(rawWindow); err != nil {
		return f, "", fmt.Errorf("флаг --%s: %w", flagWindow, err)
	}
	if f.Warranty, err = listing.ParseWarrantyFilter(rawGarantia); err != nil {
		return f, "", fmt.Errorf("флаг --%s: %w", flagGarantia, err)
	}
	return f, search, nil
}

// printList печатает записи таблицей.
func printList(out io.Writer, records []models.Apontamento) error {
	if len(records) == 0 {
		_, err := fmt.Fprintln(out, "Nenhum apontamento encontrado.")
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATA\tHORAS\tPROJETO\tDESCRIÇÃO\tGARANTIA")
	for _, r := range records {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, form.FormatDate(r.Data), r.Horas, r.Projeto, r.Descricao, form.FormatGarantia(r.Garantia))
	}
	return tw.Flush()
}
