package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/mark3labs/onboardr/internal/hooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunHooks(t *testing.T) {
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	list := []*hooks.HookConfig{
		{Command: "echo welcome {{skill_slug}}", PipeOutput: true},
		{Command: "echo quiet"},
	}
	require.NoError(t, runHooks(context.Background(), &out, list, hooks.Variables{SkillSlug: "pro"}))
	assert.Equal(t, "welcome pro\n", out.String())
}

func TestRunHooks_Empty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runHooks(context.Background(), &out, nil, hooks.Variables{}))
	assert.Empty(t, out.String())
}
