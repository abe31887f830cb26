package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "plain",
			choices:        []string{"plain", "table", "yaml"},
			description:    "Report format.",
			expectedOutput: "`<PLAIN|table|yaml>` Report format.",
		},
		{
			name:           "DefaultLastChoice",
			defaultChoice:  "yaml",
			choices:        []string{"plain", "table", "yaml"},
			description:    "Report format.",
			expectedOutput: "`<plain|table|YAML>` Report format.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "plain",
			choices:        []string{"plain", "table"},
			description:    "",
			expectedOutput: "`<PLAIN|table>`",
		},
		{
			name:           "DuplicateChoicesIgnored",
			defaultChoice:  "table",
			choices:        []string{"table", "Table", "plain"},
			description:    "Select a format.",
			expectedOutput: "`<TABLE|plain>` Select a format.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expectedOutput, FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description))
		})
	}
}

func TestAddChoiceFlagValidatesValues(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectError   bool
		expectedValue string
	}{
		{name: "DefaultApplied", arguments: []string{}, expectedValue: "plain"},
		{name: "KnownChoice", arguments: []string{"--format", "table"}, expectedValue: "table"},
		{name: "MixedCaseChoice", arguments: []string{"--format", "YAML"}, expectedValue: "yaml"},
		{name: "UnknownChoice", arguments: []string{"--format", "xml"}, expectError: true, expectedValue: "plain"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}

			var formatValue string
			AddChoiceFlag(command.Flags(), &formatValue, "format", "plain", []string{"plain", "table", "yaml"}, "Report format.")

			parseError := command.ParseFlags(testCase.arguments)
			if testCase.expectError {
				require.Error(t, parseError)
			} else {
				require.NoError(t, parseError)
			}
			require.Equal(t, testCase.expectedValue, formatValue)
		})
	}
}
