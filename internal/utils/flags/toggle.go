package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

const (
	toggleTrueCanonicalValue               = "true"
	toggleFalseCanonicalValue              = "false"
	toggleParseErrorTemplate               = "invalid toggle value %q"
	toggleArgumentTruePlaceholderConstant  = "<YES|no>"
	toggleArgumentFalsePlaceholderConstant = "<yes|NO>"
	toggleUsageTemplateConstant            = "`%s` %s"
	toggleTypeNameConstant                 = "bool"
)

var toggleLiterals = map[string]bool{
	"true": true, "yes": true, "on": true, "1": true, "t": true, "y": true,
	"false": false, "no": false, "off": false, "0": false, "f": false, "n": false,
}

// AddToggleFlag registers a boolean flag that accepts yes/no style values. A bare
// `--name` enables it; `--name=no` disables it.
func AddToggleFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil || len(name) == 0 {
		return
	}

	*target = defaultValue
	flagSet.Var(&toggleFlagValue{target: target}, name, formatToggleUsage(usage, defaultValue))
	flagSet.Lookup(name).NoOptDefVal = toggleTrueCanonicalValue
}

func formatToggleUsage(description string, defaultValue bool) string {
	placeholder := toggleArgumentFalsePlaceholderConstant
	if defaultValue {
		placeholder = toggleArgumentTruePlaceholderConstant
	}
	trimmedDescription := strings.TrimSpace(description)
	if len(trimmedDescription) == 0 {
		return fmt.Sprintf("`%s`", placeholder)
	}
	return fmt.Sprintf(toggleUsageTemplateConstant, placeholder, trimmedDescription)
}

type toggleFlagValue struct {
	target *bool
}

func (value *toggleFlagValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if len(normalizedValue) == 0 {
		normalizedValue = toggleTrueCanonicalValue
	}

	parsedValue, known := toggleLiterals[normalizedValue]
	if !known {
		return fmt.Errorf(toggleParseErrorTemplate, rawValue)
	}
	*value.target = parsedValue
	return nil
}

func (value *toggleFlagValue) String() string {
	if value == nil || value.target == nil || !*value.target {
		return toggleFalseCanonicalValue
	}
	return toggleTrueCanonicalValue
}

func (value *toggleFlagValue) Type() string {
	return toggleTypeNameConstant
}
