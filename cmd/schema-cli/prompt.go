package main

import (
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/RustWorks/webadmin/pkg/schema"
	"github.com/RustWorks/webadmin/pkg/validate"
	"github.com/RustWorks/webadmin/pkg/visibility"
)

// editRecord walks the schema's fields in declaration order, prompting for
// each one that is visible given the answers collected so far. Visibility is
// re-evaluated after every answer so gated blocks appear as soon as their
// gate value selects them.
func editRecord(s *schema.Schema) (validate.RawValues, error) {
	raw := make(validate.RawValues)
	for _, f := range s.Fields() {
		if !visibility.FieldVisible(s, f.ID, looseValues(s, raw)) {
			continue
		}
		answer, err := promptField(f)
		if err != nil {
			return nil, err
		}
		if answer != nil {
			raw[f.ID] = answer
		}
	}
	return raw, nil
}

func promptField(f schema.Field) ([]string, error) {
	message := f.Label
	if message == "" {
		message = f.ID
	}

	switch f.Type.Kind {
	case schema.TypeKindBoolean:
		var out bool
		prompt := &survey.Confirm{
			Message: message,
			Help:    f.Help,
			Default: len(f.Default) > 0 && f.Default[0] == "true",
		}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, err
		}
		if out {
			return []string{"true"}, nil
		}
		return []string{"false"}, nil

	case schema.TypeKindSecret:
		var out string
		prompt := &survey.Password{Message: message, Help: f.Help}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, err
		}
		return answerOrNil(out), nil

	case schema.TypeKindText:
		var out string
		prompt := &survey.Multiline{Message: message, Help: f.Help}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, err
		}
		return answerOrNil(out), nil

	case schema.TypeKindArray:
		var out string
		prompt := &survey.Input{
			Message: message + " (comma-separated)",
			Help:    f.Help,
			Default: strings.Join(f.Default, ","),
		}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, err
		}
		return splitList(out), nil

	case schema.TypeKindSelect:
		labels := make([]string, len(f.Type.Options))
		byLabel := make(map[string]string, len(f.Type.Options))
		for i, opt := range f.Type.Options {
			label := opt.Label
			if label == "" {
				label = opt.Value
			}
			labels[i] = label
			byLabel[label] = opt.Value
		}
		if f.Type.Multi {
			var picked []string
			prompt := &survey.MultiSelect{Message: message, Help: f.Help, Options: labels}
			if err := survey.AskOne(prompt, &picked); err != nil {
				return nil, err
			}
			values := make([]string, len(picked))
			for i, label := range picked {
				values[i] = byLabel[label]
			}
			if len(values) == 0 {
				return nil, nil
			}
			return values, nil
		}
		var picked string
		prompt := &survey.Select{Message: message, Help: f.Help, Options: labels}
		if d := defaultLabel(f); d != "" {
			prompt.Default = d
		}
		if err := survey.AskOne(prompt, &picked); err != nil {
			return nil, err
		}
		return []string{byLabel[picked]}, nil

	default:
		var out string
		prompt := &survey.Input{Message: message, Help: f.Help}
		if len(f.Default) > 0 {
			prompt.Default = f.Default[0]
		}
		if err := survey.AskOne(prompt, &out); err != nil {
			return nil, err
		}
		return answerOrNil(out), nil
	}
}

func defaultLabel(f schema.Field) string {
	if len(f.Default) == 0 {
		return ""
	}
	for _, opt := range f.Type.Options {
		if opt.Value == f.Default[0] {
			if opt.Label != "" {
				return opt.Label
			}
			return opt.Value
		}
	}
	return ""
}

func answerOrNil(out string) []string {
	if strings.TrimSpace(out) == "" {
		return nil
	}
	return []string{out}
}

func splitList(out string) []string {
	var values []string
	for _, item := range strings.Split(out, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
