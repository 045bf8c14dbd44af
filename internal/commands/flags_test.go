package commands

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultLogFile(t *testing.T) {
	stateHome := t.TempDir()
	t.Setenv("XDG_STATE_HOME", stateHome)

	assert.Equal(t, filepath.Join(stateHome, "foreman", "foreman.log"), DefaultLogFile())
}
