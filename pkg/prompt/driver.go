package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// PromptDriver asks a single question on a terminal. Implementations read
// the label, help text, choices and current value from the Question; the
// current value is the default answer.
type PromptDriver interface {
	Text(ctx context.Context, q Question) (string, error)
	Password(ctx context.Context, q Question) (string, error)
	Multiline(ctx context.Context, q Question) (string, error)
	Confirm(ctx context.Context, q Question) (bool, error)
	// Choose returns one of q.Choices.
	Choose(ctx context.Context, q Question) (string, error)
	// ChooseMany returns a subset of q.Choices in choice order.
	ChooseMany(ctx context.Context, q Question) ([]string, error)
	Info(ctx context.Context, msg string) error
}

type surveyDriver struct {
	out  io.Writer
	opts []survey.AskOpt
}

// NewSurveyDriver returns the survey-backed driver. Info messages go to out,
// or stdout when out is nil.
func NewSurveyDriver(out io.Writer, opts ...survey.AskOpt) PromptDriver {
	if out == nil {
		out = os.Stdout
	}
	return &surveyDriver{out: out, opts: opts}
}

func (d *surveyDriver) Text(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Input{Message: q.Label, Help: q.Help, Default: stringValue(q.Current)}, &answer)
	return answer, err
}

func (d *surveyDriver) Password(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Password{Message: q.Label, Help: q.Help}, &answer)
	return answer, err
}

func (d *surveyDriver) Multiline(ctx context.Context, q Question) (string, error) {
	var answer string
	err := d.ask(ctx, &survey.Multiline{Message: q.Label, Help: q.Help, Default: stringValue(q.Current)}, &answer)
	return answer, err
}

func (d *surveyDriver) Confirm(ctx context.Context, q Question) (bool, error) {
	current, _ := q.Current.(bool)
	var answer bool
	err := d.ask(ctx, &survey.Confirm{Message: q.Label, Help: q.Help, Default: current}, &answer)
	return answer, err
}

func (d *surveyDriver) Choose(ctx context.Context, q Question) (string, error) {
	p := &survey.Select{Message: q.Label, Help: q.Help, Options: q.Choices}
	if current := stringValue(q.Current); slices.Contains(q.Choices, current) {
		p.Default = current
	}
	var answer string
	err := d.ask(ctx, p, &answer)
	return answer, err
}

func (d *surveyDriver) ChooseMany(ctx context.Context, q Question) ([]string, error) {
	p := &survey.MultiSelect{Message: q.Label, Help: q.Help, Options: q.Choices}
	if current := knownChoices(q.Choices, stringSlice(q.Current)); len(current) > 0 {
		p.Default = current
	}
	var answer []string
	err := d.ask(ctx, p, &answer)
	return knownChoices(q.Choices, answer), err
}

func (d *surveyDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func (d *surveyDriver) ask(ctx context.Context, p survey.Prompt, answer any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := survey.AskOne(p, answer, d.opts...)
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// knownChoices keeps the values present in choices, in choice order.
func knownChoices(choices, values []string) []string {
	var out []string
	for _, choice := range choices {
		if slices.Contains(values, choice) {
			out = append(out, choice)
		}
	}
	return out
}
