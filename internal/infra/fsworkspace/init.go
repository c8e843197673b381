package fsworkspace

import (
	"embed"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/rashi/internal/domain"
	"github.com/aalvaropc/rashi/internal/infra/ephemeris"
	"github.com/aalvaropc/rashi/internal/ports"
)

//go:embed templates
var templatesFS embed.FS

// ephemerisDir is where init copies the editable ephemeris data files.
const ephemerisDir = "ephe"

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.WorkspaceInitializer = (*Initializer)(nil)

func (i *Initializer) Init(spec domain.WorkspaceSpec, force bool) error {
	root := filepath.Clean(spec.Root)

	dirs := []string{
		filepath.Join(root, "charts"),
		filepath.Join(root, ephemerisDir),
		filepath.Join(root, ".rashi", "logs"),
	}

	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return opError("fsworkspace.mkdir", d, err)
		}
	}

	if err := ensureGitignore(root); err != nil {
		return opError("fsworkspace.gitignore", filepath.Join(root, ".gitignore"), err)
	}

	tpl, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return opError("fsworkspace.templates", root, err)
	}
	if err := copyTree(tpl, root, force); err != nil {
		return err
	}
	return copyTree(ephemeris.DataFS(), filepath.Join(root, ephemerisDir), force)
}

// copyTree writes every file in src under dst, keeping existing files
// unless force is set.
func copyTree(src fs.FS, dst string, force bool) error {
	return fs.WalkDir(src, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		target := filepath.Join(dst, filepath.FromSlash(p))
		if !force {
			if _, statErr := os.Stat(target); statErr == nil {
				return nil
			}
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return opError("fsworkspace.mkdir", filepath.Dir(target), err)
		}

		b, err := fs.ReadFile(src, p)
		if err != nil {
			return opError("fsworkspace.read", p, err)
		}
		if err := os.WriteFile(target, b, 0o644); err != nil {
			return opError("fsworkspace.write", target, err)
		}
		return nil
	})
}

func ensureGitignore(root string) error {
	const header = "# rashi"
	entries := []string{
		".rashi/",
		"charts/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 32)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}

func opError(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}
