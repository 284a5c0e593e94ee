package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	full := GetFullVersion()

	assert.Contains(t, full, GetVersion())
	assert.Contains(t, full, GetBuild())
	assert.Contains(t, full, GetGitCommit())
}
