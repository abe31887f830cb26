// Package flags provides pflag value types shared by the manifest-audit commands.
package flags
