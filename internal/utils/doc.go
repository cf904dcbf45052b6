// Package utils holds the CLI plumbing shared by get-contributors commands:
// the Viper-backed ConfigurationLoader, the zap LoggerFactory, values passed
// through the cobra command context and a writer that flushes progress output.
package utils
