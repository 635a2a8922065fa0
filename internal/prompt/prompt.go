// Package prompt asks the operator yes/no questions on the terminal.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// ErrAborted signals the user aborted input (e.g., Ctrl+C).
var ErrAborted = errors.New("prompt: aborted")

// Confirmer asks a yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, message string, def bool) (bool, error)
}

type askFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

type surveyConfirmer struct {
	ask  askFunc
	opts []survey.AskOpt
}

// Survey returns a Confirmer backed by survey prompts on stdin/stdout.
func Survey(opts ...survey.AskOpt) Confirmer {
	return &surveyConfirmer{ask: survey.AskOne, opts: opts}
}

func (s *surveyConfirmer) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	q := &survey.Confirm{
		Message: message,
		Default: def,
	}
	if err := s.ask(q, &out, s.opts...); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// Static answers every question with the same value. It stands in for the
// terminal when confirmation is disabled or stdin is not interactive.
type Static bool

func (s Static) Confirm(ctx context.Context, _ string, _ bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return bool(s), nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
