package picker

import "github.com/robottwo/acinput/pkg/autocomplete"

type Options struct {
	// Widget configures the hosted autocomplete input. Its Document is
	// replaced by the picker's own.
	Widget autocomplete.Options
	// Header is shown on the status line above the widget, usually the
	// source of the candidate pool.
	Header   string
	ShowHelp bool
}

func NewOptions() Options {
	return Options{
		Widget:   autocomplete.NewOptions(),
		ShowHelp: true,
	}
}
