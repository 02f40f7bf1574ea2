package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/casecov/internal/domain"
	m "github.com/mouse-blink/casecov/internal/model"
)

func TestListCmd_PassesPaths(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newListCmd)

	mockWorkflow.EXPECT().List(mock.Anything, domain.ListArgs{
		Paths:   []m.Path{"./..."},
		Exclude: []string{},
	}).Return(nil)

	cmd.SetArgs([]string{"list", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestListCmd_WithExcludePatterns(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newListCmd)

	mockWorkflow.EXPECT().List(mock.Anything, mock.MatchedBy(func(args domain.ListArgs) bool {
		return len(args.Exclude) == 2 && args.Exclude[0] == "^vendor/" && args.Exclude[1] == "_old"
	})).Return(nil)

	cmd.SetArgs([]string{"list", "-x", "^vendor/", "-x", "_old", "./..."})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestNewListCmd(t *testing.T) {
	cmd := newListCmd()

	assert.Equal(t, "list [paths...]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("exclude"))
}
