package usecase

import (
	"errors"
	"strings"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/ports"
)

// InitWorkspace lays out a new rashi workspace (config, ephemeris data,
// charts dir) through the injected initializer.
type InitWorkspace struct {
	initializer ports.WorkspaceInitializer
}

func NewInitWorkspace(initializer ports.WorkspaceInitializer) *InitWorkspace {
	return &InitWorkspace{initializer: initializer}
}

func (uc *InitWorkspace) Execute(root string, force bool) error {
	root = strings.TrimSpace(root)
	if root == "" {
		return &domain.OpError{
			Op:   "workspace.init",
			Kind: domain.KindInvalidConfig,
			Err:  errors.New("workspace root is empty"),
		}
	}
	return uc.initializer.Init(domain.WorkspaceSpec{Root: root}, force)
}
