package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

var errAborted = errors.New("aborted")

type prompter interface {
	Value(ctx context.Context, key string, hidden bool) (string, error)
}

type surveyPrompter struct{}

func (surveyPrompter) Value(ctx context.Context, key string, hidden bool) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	msg := fmt.Sprintf("Value for %s:", key)
	var prompt survey.Prompt = &survey.Input{Message: msg}
	if hidden {
		prompt = &survey.Password{Message: msg}
	}

	var out string
	if err := survey.AskOne(prompt, &out); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return "", errAborted
		}
		return "", err
	}
	return out, nil
}
