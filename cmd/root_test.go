package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mouse-blink/casecov/internal/adapter"
	"github.com/mouse-blink/casecov/internal/domain"
	m "github.com/mouse-blink/casecov/internal/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "casecov.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestRootCmd_ConfigFileFillsUnsetFlags(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newCheckCmd)
	config := writeConfig(t, `parallel = 8
reports = "stored"
fail_on_missing = true
exclude = ["^generated/"]
ignore = ["NotAConstant"]
`)

	mockWorkflow.EXPECT().Check(mock.Anything, mock.MatchedBy(func(args domain.CheckArgs) bool {
		return args.Threads == 8 &&
			args.FailOnMissing &&
			args.Reports == m.Path("stored") &&
			len(args.Exclude) == 2 && args.Exclude[0] == "^generated/" && args.Exclude[1] == "^tmp/" &&
			len(args.Ignore) == 2 && args.Ignore[0] == "NotAConstant" && args.Ignore[1] == "MissingCases"
	})).Return(nil)

	cmd.SetArgs([]string{"check", "--config", config, "-x", "^tmp/", "--ignore", "MissingCases"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRootCmd_FlagsOverrideConfig(t *testing.T) {
	cmd, mockWorkflow := newTestRoot(t, newCheckCmd)
	config := writeConfig(t, "parallel = 8\nreports = \"stored\"\n")

	mockWorkflow.EXPECT().Check(mock.Anything, mock.MatchedBy(func(args domain.CheckArgs) bool {
		return args.Threads == 2 && args.Reports == m.Path("elsewhere")
	})).Return(nil)

	cmd.SetArgs([]string{"check", "-c", config, "-p", "2", "-r", "elsewhere"})
	err := cmd.Execute()
	require.NoError(t, err)
}

func TestRootCmd_InvalidConfig(t *testing.T) {
	cmd, _ := newTestRoot(t, newCheckCmd)
	config := writeConfig(t, "parallel = -3\n")

	cmd.SetArgs([]string{"check", "--config", config})
	err := cmd.Execute()
	require.ErrorIs(t, err, adapter.ErrInvalidConfig)
}

func TestRootCmd_MissingExplicitConfig(t *testing.T) {
	cmd, _ := newTestRoot(t, newCheckCmd)

	cmd.SetArgs([]string{"check", "--config", filepath.Join(t.TempDir(), "absent.toml")})
	err := cmd.Execute()
	require.Error(t, err)
}

func TestParsePaths(t *testing.T) {
	assert.Equal(t, []m.Path{"./a", "./b/..."}, parsePaths([]string{"./a", "./b/..."}))
	assert.Empty(t, parsePaths(nil))
}
