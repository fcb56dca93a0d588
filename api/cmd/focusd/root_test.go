package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	root := NewRootCmd()

	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["version"])
	assert.True(t, names["run"])
}

func TestRunCmd_FlagsHaveDefaults(t *testing.T) {
	root := NewRootCmd()

	for _, c := range root.Commands() {
		if c.Name() == "run" {
			f := c.Flags().Lookup("http-addr")
			require.NotNil(t, f)
			assert.Equal(t, ":8090", f.DefValue)
			return
		}
	}
	t.Fatal("run command not found")
}

func TestGetVersion_ReturnsNonEmptyString(t *testing.T) {
	v := GetVersion()
	assert.NotEmpty(t, v)
}
