package audit_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/manifest-audit/internal/audit"
)

const (
	testReportManifestPathConstant = "./CMakeLists.txt"
	testReportDigestConstant       = "0123456789abcdef"
)

func TestPlainReportRenderer(testInstance *testing.T) {
	testCases := []struct {
		name           string
		report         audit.Report
		expectedOutput string
	}{
		{
			name:           "no_findings_prints_nothing",
			report:         audit.Report{MissingEntries: []string{}},
			expectedOutput: "",
		},
		{
			name:           "missing_entries",
			report:         audit.Report{MissingEntries: []string{"src/a.h", "src/b.cpp"}},
			expectedOutput: audit.MissingEntriesBanner + "\nsrc/a.h\nsrc/b.cpp\n",
		},
		{
			name:           "stale_only",
			report:         audit.Report{StaleDeclarations: []string{"src/gone.cpp"}},
			expectedOutput: audit.MissingFilesBanner + "\nsrc/gone.cpp\n",
		},
		{
			name:           "both_directions",
			report:         audit.Report{MissingEntries: []string{"src/a.h"}, StaleDeclarations: []string{"src/gone.cpp"}},
			expectedOutput: audit.MissingEntriesBanner + "\nsrc/a.h\n" + audit.MissingFilesBanner + "\nsrc/gone.cpp\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			renderer, rendererError := audit.NewReportRenderer(audit.OutputFormatPlain)
			require.NoError(testInstance, rendererError)

			outputBuffer := &strings.Builder{}
			require.NoError(testInstance, renderer.Render(outputBuffer, testCase.report))
			require.Equal(testInstance, testCase.expectedOutput, outputBuffer.String())
		})
	}
}

func TestBannerMatchesOriginalWidth(testInstance *testing.T) {
	require.Equal(testInstance, "==== MISSING ENTRIES ============================================", audit.MissingEntriesBanner)
	require.Len(testInstance, audit.MissingFilesBanner, len(audit.MissingEntriesBanner))
}

func TestTableReportRenderer(testInstance *testing.T) {
	renderer, rendererError := audit.NewReportRenderer(audit.OutputFormatTable)
	require.NoError(testInstance, rendererError)

	emptyBuffer := &strings.Builder{}
	require.NoError(testInstance, renderer.Render(emptyBuffer, audit.Report{}))
	require.Empty(testInstance, emptyBuffer.String())

	outputBuffer := &strings.Builder{}
	report := audit.Report{MissingEntries: []string{"src/core/app.h"}, StaleDeclarations: []string{"src/gone.cpp"}}
	require.NoError(testInstance, renderer.Render(outputBuffer, report))

	renderedTable := outputBuffer.String()
	require.Contains(testInstance, renderedTable, "STATUS")
	require.Contains(testInstance, renderedTable, "PATH")
	require.Contains(testInstance, renderedTable, "src/core/app.h")
	require.Contains(testInstance, renderedTable, string(audit.FindingKindMissingEntry))
	require.Contains(testInstance, renderedTable, "src/gone.cpp")
	require.Contains(testInstance, renderedTable, string(audit.FindingKindStaleDeclaration))
	require.Less(testInstance, strings.Index(renderedTable, "src/core/app.h"), strings.Index(renderedTable, "src/gone.cpp"))
}

func TestYAMLReportRenderer(testInstance *testing.T) {
	renderer, rendererError := audit.NewReportRenderer(audit.OutputFormatYAML)
	require.NoError(testInstance, rendererError)

	emptyBuffer := &strings.Builder{}
	require.NoError(testInstance, renderer.Render(emptyBuffer, audit.Report{ManifestPath: testReportManifestPathConstant}))
	require.Empty(testInstance, emptyBuffer.String())

	outputBuffer := &strings.Builder{}
	report := audit.Report{
		ManifestPath:   testReportManifestPathConstant,
		ManifestDigest: testReportDigestConstant,
		MissingEntries: []string{"src/a.h", "src/b.cpp"},
	}
	require.NoError(testInstance, renderer.Render(outputBuffer, report))

	var decoded struct {
		Manifest          string   `yaml:"manifest"`
		ManifestDigest    string   `yaml:"manifest_digest"`
		MissingEntries    []string `yaml:"missing_entries"`
		StaleDeclarations []string `yaml:"stale_declarations"`
	}
	require.NoError(testInstance, yaml.Unmarshal([]byte(outputBuffer.String()), &decoded))
	require.Equal(testInstance, testReportManifestPathConstant, decoded.Manifest)
	require.Equal(testInstance, testReportDigestConstant, decoded.ManifestDigest)
	require.Equal(testInstance, report.MissingEntries, decoded.MissingEntries)
	require.Empty(testInstance, decoded.StaleDeclarations)
}

func TestNewReportRendererRejectsUnknownFormat(testInstance *testing.T) {
	renderer, rendererError := audit.NewReportRenderer(audit.OutputFormat("xml"))
	require.Error(testInstance, rendererError)
	require.Nil(testInstance, renderer)
	require.Contains(testInstance, rendererError.Error(), "plain, table, yaml")
}
