package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestGenerate_WritesOneFilePerSubject(t *testing.T) {
	state := &cliState{logger: zap.NewNop(), outDir: t.TempDir()}

	err := state.generate(context.Background(), []string{"bdougie", "defunkt"}, func(ctx context.Context, subject string) (string, error) {
		return "<svg>" + subject + "</svg>", nil
	})
	require.NoError(t, err)

	for _, subject := range []string{"bdougie", "defunkt"} {
		body, err := os.ReadFile(filepath.Join(state.outDir, subject+".svg"))
		require.NoError(t, err)
		assert.Contains(t, string(body), subject)
	}
}

func TestGenerate_AttemptsEverySubjectBeforeFailing(t *testing.T) {
	state := &cliState{logger: zap.NewNop(), outDir: t.TempDir()}

	var mu sync.Mutex
	attempted := make(map[string]bool)
	renderErr := errors.New("subject unavailable")

	err := state.generate(context.Background(), []string{"bdougie", "broken", "defunkt"}, func(ctx context.Context, subject string) (string, error) {
		mu.Lock()
		attempted[subject] = true
		mu.Unlock()

		if subject == "broken" {
			return "", renderErr
		}
		return "<svg/>", nil
	})
	require.ErrorIs(t, err, renderErr)

	// one failure must not short-circuit the rest of the batch
	assert.Len(t, attempted, 3)
	assert.FileExists(t, filepath.Join(state.outDir, "bdougie.svg"))
	assert.FileExists(t, filepath.Join(state.outDir, "defunkt.svg"))
	assert.NoFileExists(t, filepath.Join(state.outDir, "broken.svg"))
}

func TestDefaultSubjects(t *testing.T) {
	logins, err := newUsersCmd(&cliState{}).Flags().GetStringSlice("logins")
	require.NoError(t, err)
	assert.Equal(t, []string{"bdougie", "defunkt"}, logins)

	ids, err := newInsightsCmd(&cliState{}).Flags().GetStringSlice("ids")
	require.NoError(t, err)
	assert.Equal(t, []string{"102"}, ids)
}
