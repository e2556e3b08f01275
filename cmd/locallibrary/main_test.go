package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "locallibrary dev\n", out)
}

func TestEmailPreviewListsTemplates(t *testing.T) {
	out, err := execute(t, "email-preview")
	require.NoError(t, err)
	assert.Contains(t, out, "loan_reminder")
}

func TestEmailPreviewRendersTemplate(t *testing.T) {
	out, err := execute(t, "email-preview", "loan_reminder")
	require.NoError(t, err)
	assert.Contains(t, out, "The Name of the Wind")
}

func TestEmailPreviewUnknownTemplate(t *testing.T) {
	_, err := execute(t, "email-preview", "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown template")
}

func TestConfigCommandRedactsSecrets(t *testing.T) {
	t.Setenv("LOCALLIBRARY_DATABASE__DRIVER", "memory")
	t.Setenv("LOCALLIBRARY_EMAIL__RESEND_API_KEY", "re_secret")

	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, `"Driver": "memory"`)
	assert.Contains(t, out, `"ResendAPIKey": "******"`)
	assert.NotContains(t, out, "re_secret")
}
