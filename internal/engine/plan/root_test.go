package plan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/engine/plan"
)

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "widgets")
	require.NoError(t, os.MkdirAll(nested, domain.DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(root, domain.ProjectFileName), nil, domain.FilePerm))

	assert.Equal(t, root, plan.FindProjectRoot(nested))
	assert.Equal(t, root, plan.FindProjectRoot(root))
}

func TestFindProjectRoot_NoProject(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, dir, plan.FindProjectRoot(dir))
}
