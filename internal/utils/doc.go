// Package utils exposes reusable helpers consumed across forgebridge commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the CLI, plus
// small context and writer helpers shared by command wiring.
package utils
