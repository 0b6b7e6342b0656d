package commands

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"
)

func newInsightsCmd(state *cliState) *cobra.Command {
	var ids []string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Render insight cards as local SVG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.generate(cmd.Context(), ids, func(ctx context.Context, subject string) (string, error) {
				id, err := strconv.ParseInt(subject, 10, 64)
				if err != nil {
					return "", err
				}

				insight, err := state.fetcher.Insight(ctx, id)
				if err != nil {
					return "", err
				}

				contributors, err := state.fetcher.InsightContributors(ctx, id)
				if err != nil {
					return "", err
				}

				card, err := state.cards.GenerateInsight(ctx, insight, contributors)
				if err != nil {
					return "", err
				}

				return card.SVG, nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&ids, "ids", []string{"102"}, "Insight page IDs to render")

	return cmd
}
