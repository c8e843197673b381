package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aalvaropc/rashi/internal/domain"
)

type recordingInitializer struct {
	specs []domain.WorkspaceSpec
	force []bool
}

func (r *recordingInitializer) Init(spec domain.WorkspaceSpec, force bool) error {
	r.specs = append(r.specs, spec)
	r.force = append(r.force, force)
	return nil
}

func TestInitWorkspace(t *testing.T) {
	rec := &recordingInitializer{}
	uc := NewInitWorkspace(rec)

	require.NoError(t, uc.Execute(" /tmp/ws ", true))
	assert.Equal(t, []domain.WorkspaceSpec{{Root: "/tmp/ws"}}, rec.specs)
	assert.Equal(t, []bool{true}, rec.force)

	err := uc.Execute("  ", false)
	assert.True(t, domain.IsKind(err, domain.KindInvalidConfig), err)
	assert.Len(t, rec.specs, 1)
}
