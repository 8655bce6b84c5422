// asker implements the ports.ForAsking interface.
package asker

import (
	"context"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/sa6mwa/mkfeed/internal/app/ports"
	"github.com/sa6mwa/mkfeed/internal/infra/adapters/logger"
	"golang.org/x/term"
)

type forAsking struct {
	dryrun      bool
	interactive bool
	isTerminal  func() bool
	prompt      func(message string) string
}

// New returns an asker. In dry-run mode every question is answered no.
// Unless interactive is true every question is answered yes, scheduled
// runs are never interactive.
func New(dryrun, interactive bool) ports.ForAsking {
	return &forAsking{
		dryrun:      dryrun,
		interactive: interactive,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdout.Fd()))
		},
		prompt: surveyPrompt,
	}
}

func (p *forAsking) Ask(ctx context.Context, format string, a ...any) bool {
	l := logger.FromContext(ctx)
	if p.dryrun {
		l.Info(fmt.Sprintf("%s No (dry-run)", fmt.Sprintf(format, a...)))
		return false
	}
	if !p.interactive {
		l.Debug(fmt.Sprintf("%s Yes", fmt.Sprintf(format, a...)))
		return true
	}
	return p.yes(ctx, format, a...)
}

func (p *forAsking) yes(ctx context.Context, format string, a ...any) bool {
	l := logger.FromContext(ctx)
	if !p.isTerminal() {
		l.Warn("Stdout is not a terminal, will answer no", "question", fmt.Sprintf(format, a...))
		return false
	}
	switch p.prompt(fmt.Sprintf(format, a...)) {
	case "", "No":
		return false
	case "Yes":
		return true
	case "Exit program":
		l.Warn("Exiting")
		os.Exit(0)
	}
	return false
}

func surveyPrompt(message string) string {
	choice := ""
	prompt := &survey.Select{
		Message: message,
		Options: []string{"No", "Yes", "Exit program"},
		Default: "Yes",
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return ""
	}
	return choice
}
