package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobboard"
	"github.com/spigell/jobmatch/internal/scoring"
)

type candidateSummary struct {
	ID            string            `json:"id"`
	Name          string            `json:"name,omitempty"`
	Total         int               `json:"total"`
	SkillsSource  string            `json:"skills_source"`
	MatchedSkills []string          `json:"matched_skills,omitempty"`
	Breakdown     scoring.Breakdown `json:"breakdown"`
}

var candidatesCmd = &cobra.Command{
	Use:   "candidates",
	Short: "Rank applicant profiles for one job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		candidates(cmd)
	},
}

func init() {
	rootCmd.AddCommand(candidatesCmd)

	candidatesCmd.Flags().String("job", "", "job posting document (yaml or json)")
	candidatesCmd.Flags().String("profiles", "", "document with a profiles list (yaml or json)")

	candidatesCmd.MarkFlagRequired("job")
	candidatesCmd.MarkFlagRequired("profiles")
}

func candidates(cmd *cobra.Command) {
	ctx := cmd.Context()
	config, logger, adapter := bootstrap(ctx)

	job, err := jobboard.LoadJob(cmd.Flag("job").Value.String())
	if err != nil {
		logger.Fatal("loading job posting", zap.Error(err))
	}

	profiles, err := jobboard.LoadProfiles(cmd.Flag("profiles").Value.String())
	if err != nil {
		logger.Fatal("loading applicant profiles", zap.Error(err))
	}

	if len(profiles) == 0 {
		logger.Info("exiting", zap.String("reason", "no profiles found"))
		return
	}

	engine := scoring.NewEngine(adapter, scoring.WithLogger(logger))
	ranked := scoring.NewBatchScorer(engine, config.Concurrency, logger).RankApplicants(ctx, job, profiles)

	summary := make([]candidateSummary, 0, len(ranked))
	for _, match := range ranked {
		summary = append(summary, candidateSummary{
			ID:            match.Applicant.ID,
			Name:          match.Applicant.Name,
			Total:         match.Result.Total,
			SkillsSource:  match.Result.SkillsSource,
			MatchedSkills: match.Result.MatchedSkills,
			Breakdown:     match.Result.Breakdown,
		})
	}

	if err := printJSON(cmd.OutOrStdout(), summary); err != nil {
		logger.Fatal("printing ranking", zap.Error(err))
	}
}
