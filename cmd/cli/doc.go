// Package cli builds the get-contributors command-line interface. It wires the
// Cobra command hierarchy to the Viper-backed configuration loader and the zap
// logger, then registers the collect command.
package cli
