package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ignatzorin/kerjaku-backend/internal/logger"
)

var (
	exportFormat string
	exportOut    string
	importFile   string
)

// cmsCmd is the parent command for CMS collections
var cmsCmd = &cobra.Command{
	Use:   "cms",
	Short: "Управление коллекциями CMS",
	Long: `Выгрузка, загрузка и сброс коллекций CMS в хранилище.

Available subcommands:
  list   - Коллекции и количество записей
  export - Выгрузить коллекцию в JSON или YAML
  import - Заменить коллекцию содержимым файла
  reset  - Вернуть коллекцию к демо-данным`,
}

var cmsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Показать коллекции и количество записей",
	Args:  cobra.NoArgs,
	RunE:  runCMSList,
}

var cmsExportCmd = &cobra.Command{
	Use:   "export <collection>",
	Short: "Выгрузить коллекцию",
	Args:  cobra.ExactArgs(1),
	RunE:  runCMSExport,
}

var cmsImportCmd = &cobra.Command{
	Use:   "import <collection>",
	Short: "Заменить коллекцию содержимым JSON или YAML файла",
	Long: `Файл проверяется по схеме коллекции до записи: при ошибке
хранилище не меняется. Формат определяется по расширению (.yaml/.yml или .json).`,
	Args: cobra.ExactArgs(1),
	RunE: runCMSImport,
}

var cmsResetCmd = &cobra.Command{
	Use:   "reset <collection>",
	Short: "Вернуть коллекцию к демо-данным",
	Args:  cobra.ExactArgs(1),
	RunE:  runCMSReset,
}

func init() {
	cmsExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Формат: json или yaml")
	cmsExportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Файл для записи (по умолчанию stdout)")
	cmsImportCmd.Flags().StringVar(&importFile, "file", "", "Файл с массивом записей")
	_ = cmsImportCmd.MarkFlagRequired("file")

	cmsCmd.AddCommand(cmsListCmd)
	cmsCmd.AddCommand(cmsExportCmd)
	cmsCmd.AddCommand(cmsImportCmd)
	cmsCmd.AddCommand(cmsResetCmd)
}

func runCMSList(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	registry, closeFn, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "КОЛЛЕКЦИЯ\tКЛЮЧ\tЗАПИСЕЙ")
	for _, name := range registry.Names() {
		col, err := registry.Raw(name)
		if err != nil {
			return err
		}
		count, err := col.Count(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\n", col.Name(), col.Key(), count)
	}
	return w.Flush()
}

func runCMSExport(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(exportFormat)
	if format != "json" && format != "yaml" {
		return fmt.Errorf("kerjactl: неизвестный формат %q", exportFormat)
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	registry, closeFn, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	col, err := registry.Raw(args[0])
	if err != nil {
		return err
	}
	raw, err := col.LoadJSON(ctx)
	if err != nil {
		return err
	}

	var out []byte
	if format == "yaml" {
		out, err = jsonToYAML(raw)
	} else {
		out, err = indentJSON(raw)
	}
	if err != nil {
		return err
	}

	if exportOut == "" {
		_, err = cmd.OutOrStdout().Write(out)
		return err
	}
	if err := os.WriteFile(exportOut, out, 0o644); err != nil {
		return fmt.Errorf("kerjactl: не удалось записать %s: %w", exportOut, err)
	}
	logger.Info("kerjactl: коллекция выгружена", map[string]interface{}{"collection": col.Name(), "file": exportOut})
	return nil
}

func runCMSImport(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(importFile)
	if err != nil {
		return fmt.Errorf("kerjactl: не удалось прочитать %s: %w", importFile, err)
	}

	payload := data
	switch strings.ToLower(filepath.Ext(importFile)) {
	case ".yaml", ".yml":
		if payload, err = yamlToJSON(data); err != nil {
			return err
		}
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	registry, closeFn, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	col, err := registry.Raw(args[0])
	if err != nil {
		return err
	}
	if err := col.SaveJSON(ctx, payload); err != nil {
		return err
	}

	count, err := col.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: импортировано записей: %d\n", col.Name(), count)
	return nil
}

func runCMSReset(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	registry, closeFn, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	col, err := registry.Raw(args[0])
	if err != nil {
		return err
	}
	if _, err := col.ResetJSON(ctx); err != nil {
		return err
	}

	count, err := col.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: сброшено к демо-данным, записей: %d\n", col.Name(), count)
	return nil
}

func indentJSON(raw []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, fmt.Errorf("kerjactl: некорректный JSON: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// jsonToYAML сохраняет целые числа целыми: json.Number yaml.v3 пишет как int.
func jsonToYAML(raw []byte) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("kerjactl: некорректный JSON: %w", err)
	}
	return yaml.Marshal(v)
}

func yamlToJSON(data []byte) ([]byte, error) {
	var v interface{}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("kerjactl: некорректный YAML: %w", err)
	}
	return json.Marshal(v)
}

// writeLine пишет строку в вывод команды.
func writeLine(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format+"\n", args...)
}
