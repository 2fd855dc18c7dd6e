package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/filtering"
	"github.com/spigell/jobmatch/internal/jobboard"
	"github.com/spigell/jobmatch/internal/scoring"
)

const (
	PromptReportByCompany     = "Report by company"
	PromptInspect             = "Inspect a job"
	PromptAppendToExcludeFile = "Append all jobs to exclude file"
	PromptJobsToFile          = "Dump jobs to file"
	PromptExit                = "Exit"
	PromptBack                = "back"
)

var errExit = errors.New("exit requested")

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank job postings for one applicant profile and review them",
	Run: func(cmd *cobra.Command, _ []string) {
		rank(cmd)
	},
}

func init() {
	rootCmd.AddCommand(rankCmd)

	rankCmd.Flags().StringP("profile", "p", "", "applicant profile document (yaml or json)")
	rankCmd.Flags().String("jobs", "", "document with a jobs list (yaml or json)")
	rankCmd.Flags().BoolP("auto-approve", "y", false, "print the report without interactive review")
	rankCmd.Flags().Bool("dump", false, "dump ranked jobs to a temporary file")
	rankCmd.Flags().StringP("exclude-file", "e", "", "special file with jobs to exclude. Default is unset.")
	rankCmd.Flags().Int("minimum-total", 0, "drop jobs scoring below this total")
	rankCmd.Flags().Bool("remote-only", false, "keep only remote jobs")
	rankCmd.Flags().StringSlice("skip-filter", nil, "filters to disable by name (minimum_total, remote_only, exclude_file, excluded_companies)")
	rankCmd.Flags().String("job-id", "", "print the score breakdown of a single job after ranking and exit")

	rankCmd.MarkFlagRequired("profile")
	rankCmd.MarkFlagRequired("jobs")

	viper.BindPFlag("exclude-file", rankCmd.Flags().Lookup("exclude-file"))
	viper.BindPFlag("filters.minimum-total", rankCmd.Flags().Lookup("minimum-total"))
	viper.BindPFlag("filters.remote-only", rankCmd.Flags().Lookup("remote-only"))
}

func rank(cmd *cobra.Command) {
	ctx := cmd.Context()
	config, logger, adapter := bootstrap(ctx)

	logger.Info("starting the jobmatch", zap.String("version", version))

	profile, err := jobboard.LoadProfile(cmd.Flag("profile").Value.String())
	if err != nil {
		logger.Fatal("loading applicant profile", zap.Error(err))
	}

	jobs, err := jobboard.LoadJobs(cmd.Flag("jobs").Value.String())
	if err != nil {
		logger.Fatal("loading job postings", zap.Error(err))
	}

	if jobs.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs found"))
		return
	}

	jobID := strings.TrimSpace(cmd.Flag("job-id").Value.String())
	if jobID != "" && jobs.FindByID(jobID) == nil {
		logger.Fatal("unknown job id", zap.String("job_id", jobID))
	}

	engine := scoring.NewEngine(adapter, scoring.WithLogger(logger))
	batch := scoring.NewBatchScorer(engine, config.Concurrency, logger)
	matches := jobboard.NewMatches(batch.RankJobs(ctx, profile, jobs.Items))

	skip, err := cmd.Flags().GetStringSlice("skip-filter")
	if err != nil {
		logger.Fatal("reading skip-filter flag", zap.Error(err))
	}

	filters := rankFilters(config, skip)
	for _, status := range filtering.Describe(filters) {
		logger.Debug("filter configured", zap.String("name", status.Name), zap.Bool("enabled", status.Enabled))
	}

	matches, err = filtering.Run(ctx, filterConfig(config), filtering.Deps{Logger: logger}, filters, matches)
	if err != nil {
		logger.Fatal("filtering failed", zap.Error(err))
	}

	logger.Debug("ranked jobs", zap.Strings("ids", matches.IDs()))

	if jobID != "" {
		if err := showJob(cmd, logger, matches, jobID); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		return
	}

	if matches.Len() == 0 {
		logger.Info("exiting", zap.String("reason", "no jobs left after filters"))
		return
	}

	if cmd.Flag("auto-approve").Value.String() == "true" {
		if err := handleAction(cmd, PromptReportByCompany, logger, config, matches); err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}
		if cmd.Flag("dump").Value.String() == "true" {
			if err := handleAction(cmd, PromptJobsToFile, logger, config, matches); err != nil {
				logger.Fatal("exiting", zap.Error(err))
			}
		}
		return
	}

	for {
		items := []string{PromptReportByCompany, PromptInspect, PromptJobsToFile}
		if strings.TrimSpace(config.ExcludeFile) != "" && matches.Len() != 0 {
			items = append(items, PromptAppendToExcludeFile)
		}
		items = append(items, PromptExit)

		prompt := promptui.Select{
			Label: fmt.Sprintf("%d ranked jobs. What next?", matches.Len()),
			Items: items,
		}

		_, action, err := prompt.Run()
		if err != nil {
			logger.Fatal("exiting", zap.Error(err))
		}

		if err := handleAction(cmd, action, logger, config, matches); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			logger.Fatal("exiting", zap.Error(err))
		}
	}
}

// rankFilters returns the default pipeline with the named steps disabled.
// The exclude file step is disabled when no exclude file is configured.
func rankFilters(config *Config, skip []string) []filtering.Filter {
	filters := filtering.Default()

	for _, name := range skip {
		filtering.DisableByName(filters, strings.TrimSpace(name), "disabled with --skip-filter")
	}

	if strings.TrimSpace(config.ExcludeFile) == "" {
		filtering.DisableByName(filters, filtering.ExcludeFileName, "no exclude file configured")
	}

	return filters
}

func showJob(cmd *cobra.Command, logger *zap.Logger, matches *jobboard.Matches, id string) error {
	match := matches.FindByID(id)
	if match == nil {
		logger.Info("job was dropped by filters", zap.String("job_id", id))
		return nil
	}
	return printJSON(cmd.OutOrStdout(), match)
}

func handleAction(cmd *cobra.Command, action string, logger *zap.Logger, config *Config, matches *jobboard.Matches) error {
	switch action {
	case PromptReportByCompany:
		logger.Info("current list of jobs", zap.Int("count", matches.Len()))
		return printJSON(cmd.OutOrStdout(), matches.ReportByCompany())
	case PromptInspect:
		return inspect(cmd, matches)
	case PromptJobsToFile:
		filename, err := matches.DumpToTmpFile()
		if err != nil {
			return fmt.Errorf("dump results to file: %w", err)
		}
		logger.Info("dumping result to file", zap.String("filename", filename))
		return nil
	case PromptAppendToExcludeFile:
		return appendToExcludeFile(logger, config.ExcludeFile, matches)
	case PromptExit:
		logger.Info("exiting", zap.String("reason", "got exit from prompt"))
		return errExit
	default:
		return fmt.Errorf("invalid action: %s", action)
	}
}

func inspect(cmd *cobra.Command, matches *jobboard.Matches) error {
	for {
		items := make([]string, 0, matches.Len()+1)
		for _, match := range matches.Items {
			items = append(items, fmt.Sprintf("%s [%d] %s / %s",
				match.Job.ID, match.Result.Total, match.Job.Title, match.Job.Company,
			))
		}

		jobPrompt := promptui.Select{
			Label: "Choose a job and press ENTER",
			Items: append(items, PromptBack),
		}

		index, _, err := jobPrompt.Run()
		if err != nil {
			return err
		}

		match := matchAt(matches, index)
		if match == nil {
			return nil
		}

		if err := printJSON(cmd.OutOrStdout(), match); err != nil {
			return err
		}
	}
}

// matchAt maps a prompt index back to its match. Indexes past the list,
// such as the trailing back entry, yield nil.
func matchAt(matches *jobboard.Matches, index int) *scoring.JobMatch {
	if index < 0 || index >= matches.Len() {
		return nil
	}
	return &matches.Items[index]
}

func appendToExcludeFile(logger *zap.Logger, path string, matches *jobboard.Matches) error {
	excluded, err := jobboard.GetExcludedJobsFromFile(path)
	if err != nil {
		return fmt.Errorf("reading exclude file: %w", err)
	}

	excluded.Append(matches.ToExcluded())

	if err := excluded.ToFile(path); err != nil {
		return fmt.Errorf("writing exclude file: %w", err)
	}

	logger.Info("appended to exclude file", zap.String("filename", path))

	matches.Exclude(jobboard.MatchIDField, excluded.IDs())
	return nil
}
