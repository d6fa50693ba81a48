package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ignatzorin/kerjaku-backend/internal/domain/valueobject"
	"github.com/ignatzorin/kerjaku-backend/internal/search"
)

var (
	searchText      string
	searchLocation  string
	searchSkills    string
	searchMinRating string
	searchCategory  string
	searchDuration  string
	searchStatus    string
)

// searchCmd is the parent command for catalog search
var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Поиск работников и вакансий",
}

var searchWorkersCmd = &cobra.Command{
	Use:   "workers",
	Short: "Найти работников по тексту, локации, навыкам и рейтингу",
	Example: `  kerjactl search workers --skills welder,plumber --location bekasi
  kerjactl search workers --min-rating 4.5`,
	Args: cobra.NoArgs,
	RunE: runSearchWorkers,
}

var searchJobsCmd = &cobra.Command{
	Use:     "jobs",
	Short:   "Найти вакансии по тексту, локации, категории, сроку и статусу",
	Example: `  kerjactl search jobs --category welder --status open`,
	Args:    cobra.NoArgs,
	RunE:    runSearchJobs,
}

func init() {
	for _, c := range []*cobra.Command{searchWorkersCmd, searchJobsCmd} {
		c.Flags().StringVarP(&searchText, "query", "q", "", "Текст для поиска")
		c.Flags().StringVarP(&searchLocation, "location", "l", "", "Подстрока локации")
	}
	searchWorkersCmd.Flags().StringVar(&searchSkills, "skills", "", "Навыки через запятую")
	searchWorkersCmd.Flags().StringVar(&searchMinRating, "min-rating", "", "Минимальный рейтинг 0..5")
	searchJobsCmd.Flags().StringVar(&searchCategory, "category", "", "Категория навыка")
	searchJobsCmd.Flags().StringVar(&searchDuration, "duration", "", "Тип оплаты: daily, weekly, monthly, project")
	searchJobsCmd.Flags().StringVar(&searchStatus, "status", "", "Статус: open, closed, filled")

	searchCmd.AddCommand(searchWorkersCmd)
	searchCmd.AddCommand(searchJobsCmd)
}

func runSearchWorkers(cmd *cobra.Command, args []string) error {
	skills, err := search.ParseSkills(searchSkills)
	if err != nil {
		return err
	}
	minRating, err := search.ParseMinRating(searchMinRating)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	registry, closeFn, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	workers, err := registry.Workers.Load(ctx)
	if err != nil {
		return err
	}

	found := search.FilterWorkers(workers, search.WorkerCriteria{
		Text:      searchText,
		Location:  searchLocation,
		Skills:    skills,
		MinRating: minRating,
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tИМЯ\tЛОКАЦИЯ\tНАВЫКИ\tРЕЙТИНГ")
	for _, wk := range found {
		skillNames := make([]string, 0, len(wk.Skills))
		for _, s := range wk.Skills {
			skillNames = append(skillNames, string(s))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.1f\n", wk.ID, wk.FullName, wk.Location, strings.Join(skillNames, ","), wk.AverageRating)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "найдено: %d из %d\n", len(found), len(workers))
	return nil
}

func runSearchJobs(cmd *cobra.Command, args []string) error {
	category, err := search.ParseCategory(searchCategory)
	if err != nil {
		return err
	}
	duration, err := search.ParseDuration(searchDuration)
	if err != nil {
		return err
	}
	status, err := search.ParseStatus(searchStatus)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	registry, closeFn, err := openRegistry(ctx)
	if err != nil {
		return err
	}
	defer closeFn()

	jobs, err := registry.Jobs.Load(ctx)
	if err != nil {
		return err
	}

	found := search.FilterJobs(jobs, search.JobCriteria{
		Text:     searchText,
		Location: searchLocation,
		Category: category,
		Duration: duration,
		Status:   status,
	})

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tВАКАНСИЯ\tРАБОТОДАТЕЛЬ\tЛОКАЦИЯ\tБЮДЖЕТ\tСТАТУС")
	for _, j := range found {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", j.ID, j.Title, j.EmployerName, j.Location,
			valueobject.BudgetOf(j).Label(j.DurationType), j.Status)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "найдено: %d из %d\n", len(found), len(jobs))
	return nil
}
