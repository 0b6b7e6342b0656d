package commands

import (
	"context"
	"os"
	"path/filepath"

	"github.com/devstats/social-card-service/internal/apiclient"
	"github.com/devstats/social-card-service/internal/render"
	"github.com/devstats/social-card-service/internal/service"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultAPIOrigin = "https://api.devstats.dev"

// batchConcurrency bounds how many cards are fetched and rendered at once.
const batchConcurrency = 4

// cliState holds the shared runtime state for the batch commands.
type cliState struct {
	logger  *zap.Logger
	fetcher *apiclient.Client
	cards   service.Cards
	outDir  string
}

// NewRootCmd creates the entire command tree and returns the root command.
func NewRootCmd() *cobra.Command {
	state := &cliState{}

	rootCmd := &cobra.Command{
		Use:   "cardctl",
		Short: "Batch social-card rendering for local inspection",
		Long:  `Renders social cards for a list of subjects and writes the SVG output to a local directory. Not part of the production request path.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			logger, err := zap.NewDevelopment()
			if err != nil {
				return err
			}

			apiOrigin := os.Getenv("API_ORIGIN")
			if apiOrigin == "" {
				apiOrigin = DefaultAPIOrigin
			}

			renderer, err := render.NewRenderer()
			if err != nil {
				return err
			}

			state.logger = logger
			state.fetcher = apiclient.New(logger, apiOrigin)
			// nil repository: batch rendering never touches storage or redis
			state.cards = service.New(logger, nil, state.fetcher, renderer)

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&state.outDir, "out", "./cards", "Directory to write rendered SVG files into")

	rootCmd.AddCommand(newUsersCmd(state))
	rootCmd.AddCommand(newInsightsCmd(state))

	return rootCmd
}

// generate renders every subject, bounded by batchConcurrency. All subjects
// are attempted even when one fails; the first failure is returned after the
// whole batch has finished.
func (s *cliState) generate(ctx context.Context, subjects []string, renderOne func(context.Context, string) (string, error)) error {
	if err := os.MkdirAll(s.outDir, 0755); err != nil {
		return err
	}

	var g errgroup.Group
	g.SetLimit(batchConcurrency)

	for _, subject := range subjects {
		subject := subject
		g.Go(func() error {
			svg, err := renderOne(ctx, subject)
			if err != nil {
				s.logger.Sugar().Errorf("failed to render card for subject(%s): %s", subject, err.Error())
				return err
			}

			path := filepath.Join(s.outDir, subject+".svg")
			if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
				s.logger.Sugar().Errorf("failed to write card for subject(%s): %s", subject, err.Error())
				return err
			}

			s.logger.Sugar().Infof("wrote %s", path)
			return nil
		})
	}

	return g.Wait()
}
