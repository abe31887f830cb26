// Package utils exposes reusable helpers consumed by the manifest-audit commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI, plus
// small context and writer helpers shared by the audit command.
package utils
