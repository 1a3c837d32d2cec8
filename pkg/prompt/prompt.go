// Package prompt asks form values on the terminal.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
	"github.com/samber/lo"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt aborted")

// Choice is an entry of a select prompt.
type Choice struct {
	Label string
	Value string
}

// Driver asks values from the user. The survey implementation talks to the
// terminal; tests use a scripted one.
type Driver interface {
	Input(ctx context.Context, message, def string) (string, error)
	Password(ctx context.Context, message string) (string, error)
	Confirm(ctx context.Context, message string, def bool) (bool, error)
	Select(ctx context.Context, message string, choices []Choice, def string) (string, error)
}

type surveyDriver struct{}

func NewSurveyDriver() Driver {
	return surveyDriver{}
}

func (surveyDriver) Input(ctx context.Context, message, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Input{Message: message, Default: def}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Password(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	if err := survey.AskOne(&survey.Password{Message: message}, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	var out bool
	if err := survey.AskOne(&survey.Confirm{Message: message, Default: def}, &out); err != nil {
		return false, translateSurveyErr(err)
	}
	return out, nil
}

// Select returns the value of the chosen entry.
func (surveyDriver) Select(ctx context.Context, message string, choices []Choice, def string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if len(choices) == 0 {
		return "", errors.New("nothing to choose from")
	}

	labels := lo.Map(choices, func(c Choice, _ int) string { return c.Label })
	prompt := &survey.Select{Message: message, Options: labels}
	if c, ok := lo.Find(choices, func(c Choice) bool { return c.Value == def }); ok {
		prompt.Default = c.Label
	}

	var index int
	if err := survey.AskOne(prompt, &index); err != nil {
		return "", translateSurveyErr(err)
	}
	return choices[index].Value, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}
