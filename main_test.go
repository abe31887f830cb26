package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const (
	integrationBuildTimeoutConstant        = 2 * time.Minute
	integrationRunTimeoutConstant          = 10 * time.Second
	integrationBinaryNameConstant          = "manifest-audit"
	integrationManifestFileNameConstant    = "CMakeLists.txt"
	integrationManifestTemplateConstant    = "set(MAIN_SOURCES\n%s)\n"
	integrationEntryTemplateConstant       = "    ${CMAKE_CURRENT_SOURCE_DIR}/%s\n"
	integrationBannerConstant              = "==== MISSING ENTRIES ============================================"
	integrationSubtestNameTemplate         = "%d_%s"
	integrationShortModeSkipMessage        = "skipping binary integration test in short mode"
	integrationMissingManifestFragment     = "unable to read manifest"
	integrationMissingEntriesFragment      = "missing from the manifest"
	integrationCaseCleanConstant           = "clean_tree"
	integrationCaseMissingHeaderConstant   = "missing_header"
	integrationCaseMissingManifestConstant = "missing_manifest"
	integrationCaseFailOnMissingConstant   = "fail_on_missing"
)

type integrationResult struct {
	standardOutput string
	standardError  string
	exitCode       int
}

func buildIntegrationBinary(testInstance *testing.T) string {
	testInstance.Helper()

	workingDirectory, workingDirectoryError := os.Getwd()
	require.NoError(testInstance, workingDirectoryError)

	binaryPath := filepath.Join(testInstance.TempDir(), integrationBinaryNameConstant)
	executionContext, cancel := context.WithTimeout(context.Background(), integrationBuildTimeoutConstant)
	defer cancel()

	buildCommand := exec.CommandContext(executionContext, "go", "build", "-o", binaryPath, ".")
	buildCommand.Dir = workingDirectory
	buildOutput, buildError := buildCommand.CombinedOutput()
	require.NoError(testInstance, buildError, string(buildOutput))
	return binaryPath
}

func runIntegrationBinary(testInstance *testing.T, binaryPath string, projectDirectory string, arguments ...string) integrationResult {
	testInstance.Helper()

	executionContext, cancel := context.WithTimeout(context.Background(), integrationRunTimeoutConstant)
	defer cancel()

	standardOutput := &bytes.Buffer{}
	standardError := &bytes.Buffer{}
	command := exec.CommandContext(executionContext, binaryPath, arguments...)
	command.Dir = projectDirectory
	command.Stdout = standardOutput
	command.Stderr = standardError

	exitCode := 0
	if runError := command.Run(); runError != nil {
		var exitError *exec.ExitError
		require.True(testInstance, errors.As(runError, &exitError), runError)
		exitCode = exitError.ExitCode()
	}

	return integrationResult{
		standardOutput: standardOutput.String(),
		standardError:  standardError.String(),
		exitCode:       exitCode,
	}
}

func writeIntegrationProject(testInstance *testing.T, writeManifest bool, declaredPaths []string, filesOnDisk []string) string {
	testInstance.Helper()

	projectDirectory := testInstance.TempDir()
	if writeManifest {
		entries := &strings.Builder{}
		for _, declaredPath := range declaredPaths {
			entries.WriteString(fmt.Sprintf(integrationEntryTemplateConstant, declaredPath))
		}
		manifestContents := fmt.Sprintf(integrationManifestTemplateConstant, entries.String())
		require.NoError(testInstance, os.WriteFile(filepath.Join(projectDirectory, integrationManifestFileNameConstant), []byte(manifestContents), 0o600))
	}

	for _, relativePath := range filesOnDisk {
		absolutePath := filepath.Join(projectDirectory, filepath.FromSlash(relativePath))
		require.NoError(testInstance, os.MkdirAll(filepath.Dir(absolutePath), 0o755))
		require.NoError(testInstance, os.WriteFile(absolutePath, []byte{}, 0o600))
	}
	return projectDirectory
}

func TestManifestAuditBinaryIntegration(testInstance *testing.T) {
	if testing.Short() {
		testInstance.Skip(integrationShortModeSkipMessage)
	}

	binaryPath := buildIntegrationBinary(testInstance)

	testCases := []struct {
		name                  string
		writeManifest         bool
		declaredPaths         []string
		filesOnDisk           []string
		arguments             []string
		expectedOutput        string
		expectedExitCode      int
		expectedErrorFragment string
	}{
		{
			name:          integrationCaseCleanConstant,
			writeManifest: true,
			declaredPaths: []string{"src/core/app.cpp", "src/core/app.h"},
			filesOnDisk:   []string{"src/core/app.cpp", "src/core/app.h"},
		},
		{
			name:           integrationCaseMissingHeaderConstant,
			writeManifest:  true,
			declaredPaths:  []string{"src/core/app.cpp"},
			filesOnDisk:    []string{"src/core/app.cpp", "src/core/app.h"},
			expectedOutput: integrationBannerConstant + "\nsrc/core/app.h\n",
		},
		{
			name:                  integrationCaseMissingManifestConstant,
			writeManifest:         false,
			filesOnDisk:           []string{"src/core/app.cpp"},
			expectedExitCode:      1,
			expectedErrorFragment: integrationMissingManifestFragment,
		},
		{
			name:                  integrationCaseFailOnMissingConstant,
			writeManifest:         true,
			filesOnDisk:           []string{"src/core/app.cpp"},
			arguments:             []string{"audit", "--fail-on-missing"},
			expectedOutput:        integrationBannerConstant + "\nsrc/core/app.cpp\n",
			expectedExitCode:      1,
			expectedErrorFragment: integrationMissingEntriesFragment,
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf(integrationSubtestNameTemplate, testCaseIndex, testCase.name), func(subtest *testing.T) {
			projectDirectory := writeIntegrationProject(subtest, testCase.writeManifest, testCase.declaredPaths, testCase.filesOnDisk)

			result := runIntegrationBinary(subtest, binaryPath, projectDirectory, testCase.arguments...)
			require.Equal(subtest, testCase.expectedExitCode, result.exitCode, result.standardError)
			require.Equal(subtest, testCase.expectedOutput, result.standardOutput)
			if len(testCase.expectedErrorFragment) > 0 {
				require.Contains(subtest, result.standardError, testCase.expectedErrorFragment)
			}
		})
	}
}
