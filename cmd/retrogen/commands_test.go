package retrogen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retrokit/retrogen/pkg/errors"
	"github.com/retrokit/retrogen/pkg/testutil"
)

func execute(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd := NewRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestRootWithoutSubcommandFails(t *testing.T) {
	err := execute(t)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}

func TestGenerateMissingFlagsNonInteractive(t *testing.T) {
	// Test stdin is not a terminal, so missing flags must be fatal
	err := execute(t, "generate")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
	assert.Contains(t, err.Error(), "--api-name")
	assert.Contains(t, err.Error(), "--endpoint-path")
	assert.Contains(t, err.Error(), "--base-url")
}

func TestGenerateMissingSingleFlag(t *testing.T) {
	err := execute(t, "generate",
		"--api-name", "UserService",
		"--endpoint-path", "api/v1/users")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--base-url")
	assert.NotContains(t, err.Error(), "--api-name")
}

func TestGenerateInvalidAPIName(t *testing.T) {
	err := execute(t, "generate",
		"--api-name", "userService",
		"--endpoint-path", "api/v1/users",
		"--base-url", "https://api.example.com/")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestGenerateEndToEnd(t *testing.T) {
	root := testutil.MakeJavaProject(t, "com.acme.shop")

	err := execute(t, "generate",
		"--api-name", "UserService",
		"--endpoint-path", "api/v1/users",
		"--base-url", "https://api.example.com/",
		"--project-root", root)
	require.NoError(t, err)

	client := filepath.Join(root, "src", "main", "java", "com", "acme", "shop",
		"client", "rest", "UserServiceClient.java")
	data, err := os.ReadFile(client)
	require.NoError(t, err)
	assert.Contains(t, string(data), "UserService")

	yml := testutil.MustReadFile(t, filepath.Join(root, "src", "main", "resources", "application-local.yml"))
	assert.Contains(t, yml, "user-service-api:")
}

func TestVersionCommand(t *testing.T) {
	require.NoError(t, execute(t, "version"))
}

func TestCompletionCommand(t *testing.T) {
	require.NoError(t, execute(t, "completion", "bash"))

	err := execute(t, "completion", "tcsh")
	require.Error(t, err)
}

func TestHelpTopicsAvailable(t *testing.T) {
	rootCmd := NewRootCmd()
	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	require.Equal(t, "help", helpCmd.Name())

	names := []string{}
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, strings.Join(names, " "), "docs")
}
