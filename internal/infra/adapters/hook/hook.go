// hook runs the configured post-publish command. The command is a
// text/template rendered with ports.HookValues and executed through
// /bin/sh -c. Implements the ports.ForHooking interface.
package hook

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"text/template"

	"github.com/alessio/shellescape"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
)

const shell = "/bin/sh"
const shellCommandOption = "-c"

type forHooking struct {
	postPublish string
	funcMap     template.FuncMap
	stdout      io.Writer
	stderr      io.Writer
}

// hook.New returns a ports.ForHooking adapter. An empty postPublish
// template makes PostPublish a no-op.
func New(postPublish string) ports.ForHooking {
	return &forHooking{
		postPublish: postPublish,
		funcMap: template.FuncMap{
			"escape": func(s string) string {
				return shellescape.Quote(s)
			},
			"escapeAll": func(s []string) string {
				return shellescape.QuoteCommand(s)
			},
			"join": strings.Join,
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// Command renders the post-publish template without running it.
func (h *forHooking) Command(values ports.HookValues) (string, error) {
	tmpl, err := template.New("postPublish").Funcs(h.funcMap).Parse(h.postPublish)
	if err != nil {
		return "", fmt.Errorf("unable to parse postPublish hook: %w", err)
	}
	buf := &bytes.Buffer{}
	if err := tmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("unable to render postPublish hook: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func (h *forHooking) PostPublish(ctx context.Context, values ports.HookValues) error {
	l := logger.FromContext(ctx)
	if strings.TrimSpace(h.postPublish) == "" {
		return nil
	}
	command, err := h.Command(values)
	if err != nil {
		return err
	}
	if command == "" {
		l.Debug("postPublish hook rendered to an empty command, skipping")
		return nil
	}
	l.Info("Executing postPublish hook", "command", command)
	cmd := exec.CommandContext(ctx, shell, shellCommandOption, command)
	cmd.Stdout = h.stdout
	cmd.Stderr = h.stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("postPublish hook failed: %w", err)
	}
	return nil
}
