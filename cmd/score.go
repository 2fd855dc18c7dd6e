package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/jobmatch/internal/jobboard"
	"github.com/spigell/jobmatch/internal/scoring"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score one applicant profile against one job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		score(cmd)
	},
}

func init() {
	rootCmd.AddCommand(scoreCmd)

	scoreCmd.Flags().StringP("profile", "p", "", "applicant profile document (yaml or json)")
	scoreCmd.Flags().String("job", "", "job posting document (yaml or json)")

	scoreCmd.MarkFlagRequired("profile")
	scoreCmd.MarkFlagRequired("job")
}

func score(cmd *cobra.Command) {
	ctx := cmd.Context()
	_, logger, adapter := bootstrap(ctx)

	profile, err := jobboard.LoadProfile(cmd.Flag("profile").Value.String())
	if err != nil {
		logger.Fatal("loading applicant profile", zap.Error(err))
	}

	job, err := jobboard.LoadJob(cmd.Flag("job").Value.String())
	if err != nil {
		logger.Fatal("loading job posting", zap.Error(err))
	}

	engine := scoring.NewEngine(adapter, scoring.WithLogger(logger))
	result := engine.Score(ctx, profile, job)

	logger.Info("scored applicant against job",
		zap.String("applicant_id", profile.ID),
		zap.String("job_id", job.ID),
		zap.Int("total", result.Total),
	)

	if err := printJSON(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal("printing result", zap.Error(err))
	}
}
