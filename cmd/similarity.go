package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type similarityOutput struct {
	Score    float64 `json:"score"`
	Source   string  `json:"source"`
	Degraded bool    `json:"degraded"`
}

var similarityCmd = &cobra.Command{
	Use:   "similarity TEXT1 TEXT2",
	Short: "Print the semantic similarity of two texts",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		similarity(cmd, args[0], args[1])
	},
}

func init() {
	rootCmd.AddCommand(similarityCmd)
}

func similarity(cmd *cobra.Command, text1, text2 string) {
	_, logger, adapter := bootstrap(cmd.Context())

	res := adapter.Similarity(cmd.Context(), text1, text2)

	out := similarityOutput{
		Score:    res.Score,
		Source:   string(res.Source),
		Degraded: res.Degraded(),
	}
	if err := printJSON(cmd.OutOrStdout(), out); err != nil {
		logger.Fatal("printing similarity", zap.Error(err))
	}
}
