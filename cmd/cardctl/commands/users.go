package commands

import (
	"context"

	"github.com/spf13/cobra"
)

func newUsersCmd(state *cliState) *cobra.Command {
	var logins []string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "Render user cards as local SVG files",
		RunE: func(cmd *cobra.Command, args []string) error {
			return state.generate(cmd.Context(), logins, func(ctx context.Context, login string) (string, error) {
				user, err := state.fetcher.User(ctx, login)
				if err != nil {
					return "", err
				}

				card, err := state.cards.GenerateUser(ctx, user)
				if err != nil {
					return "", err
				}

				return card.SVG, nil
			})
		},
	}

	cmd.Flags().StringSliceVar(&logins, "logins", []string{"bdougie", "defunkt"}, "Usernames to render")

	return cmd
}
