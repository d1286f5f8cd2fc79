package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dmitrijs2005/fleetcheck/internal/export"
	"github.com/dmitrijs2005/fleetcheck/internal/filex"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

// Export writes the document for a checklist into the export directory.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return usage("export <id> <txt|html>")
	}
	var (
		ext    string
		render func(io.Writer, models.Checklist) error
	)
	switch args[1] {
	case "txt", "doc":
		ext, render = "doc", export.Text
	case "html":
		ext, render = "html", export.HTML
	default:
		return usage("export <id> <txt|html>")
	}

	c, err := a.checklists.Get(ctx, a.current(), args[0])
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := render(&buf, c); err != nil {
		return err
	}

	path, err := a.writeExport(export.FileName(c, ext), buf.Bytes())
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Exported to %s\n", path)
	return nil
}

func (a *App) writeExport(name string, data []byte) (string, error) {
	dir, err := filex.EnsureDir(a.exportDir)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := filex.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
