package utils

import "context"

type commandContextKey struct{}

// CommandContextValues carries the values the root command hands to subcommands through the cobra context.
type CommandContextValues struct {
	ConfigurationFilePath string
}

// WithCommandContextValues attaches values to parentContext.
func WithCommandContextValues(parentContext context.Context, values CommandContextValues) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, commandContextKey{}, values)
}

// CommandContextValuesFrom extracts the values stored by WithCommandContextValues.
func CommandContextValuesFrom(executionContext context.Context) (CommandContextValues, bool) {
	if executionContext == nil {
		return CommandContextValues{}, false
	}
	values, found := executionContext.Value(commandContextKey{}).(CommandContextValues)
	return values, found
}
