package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name             string
		args             []string
		expectedType     CommandType
		expectedNoUI     bool
		expectedSeverity string
		expectedTag      string
		expectedMessage  string
		expectedDirs     []string
		expectedForce    bool
		expectedDryRun   bool
	}{
		{
			name:         "no args - view",
			args:         []string{},
			expectedType: CommandView,
		},
		{
			name:         "--no-ui flag with no command",
			args:         []string{"--no-ui"},
			expectedType: CommandView,
			expectedNoUI: true,
		},
		{
			name:         "view command",
			args:         []string{"view"},
			expectedType: CommandView,
		},
		{
			name:         "view alias v with --no-ui",
			args:         []string{"v", "--no-ui"},
			expectedType: CommandView,
			expectedNoUI: true,
		},
		{
			name:         "--no-ui flag before view command",
			args:         []string{"--no-ui", "view"},
			expectedType: CommandView,
			expectedNoUI: true,
		},
		{
			name:             "emit joins message words",
			args:             []string{"emit", "disk", "almost", "full"},
			expectedType:     CommandEmit,
			expectedSeverity: "INFO",
			expectedMessage:  "disk almost full",
		},
		{
			name:             "emit with type and tag",
			args:             []string{"emit", "--type", "ERROR", "--tag", "Billing", "charge failed"},
			expectedType:     CommandEmit,
			expectedSeverity: "ERROR",
			expectedTag:      "Billing",
			expectedMessage:  "charge failed",
		},
		{
			name:             "emit alias e with short type flag",
			args:             []string{"e", "-t", "warning", "slow"},
			expectedType:     CommandEmit,
			expectedSeverity: "warning",
			expectedMessage:  "slow",
		},
		{
			name:         "watch defaults to the working directory",
			args:         []string{"watch"},
			expectedType: CommandWatch,
			expectedDirs: []string{"."},
		},
		{
			name:         "watch alias w with dirs",
			args:         []string{"w", "logs", "/var/log/app"},
			expectedType: CommandWatch,
			expectedDirs: []string{"logs", "/var/log/app"},
		},
		{
			name:         "init command",
			args:         []string{"init"},
			expectedType: CommandInit,
		},
		{
			name:          "init alias i with force",
			args:          []string{"i", "--force"},
			expectedType:  CommandInit,
			expectedForce: true,
		},
		{
			name:           "init with dry run",
			args:           []string{"init", "--dry-run"},
			expectedType:   CommandInit,
			expectedDryRun: true,
		},
		{
			name:         "version command",
			args:         []string{"version"},
			expectedType: CommandVersion,
		},
		{
			name:         "--version flag",
			args:         []string{"--version"},
			expectedType: CommandVersion,
		},
		{
			name:         "-v flag",
			args:         []string{"-v"},
			expectedType: CommandVersion,
		},
		{
			name:         "help command",
			args:         []string{"help"},
			expectedType: CommandHelp,
		},
		{
			name:         "--help flag",
			args:         []string{"--help"},
			expectedType: CommandHelp,
		},
		{
			name:         "-h flag",
			args:         []string{"-h"},
			expectedType: CommandHelp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Parse(tt.args)

			assert.NoError(t, err)
			assert.NotNil(t, result)
			assert.Equal(t, tt.expectedType, result.Type)
			assert.Equal(t, tt.expectedNoUI, result.NoUI)
			assert.Equal(t, tt.expectedTag, result.Tag)
			assert.Equal(t, tt.expectedMessage, result.Message)
			assert.Equal(t, tt.expectedDirs, result.Dirs)
			assert.Equal(t, tt.expectedForce, result.Force)
			assert.Equal(t, tt.expectedDryRun, result.DryRun)

			if tt.expectedType == CommandEmit {
				assert.Equal(t, tt.expectedSeverity, result.Severity)
			}
		})
	}
}

func Test_Parse_InvalidCommand(t *testing.T) {
	result, err := Parse([]string{"unknown"})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func Test_Parse_EmitWithoutMessage(t *testing.T) {
	result, err := Parse([]string{"emit", "--type", "ERROR"})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func Test_Parse_InitWithArgs(t *testing.T) {
	result, err := Parse([]string{"init", "extra"})
	assert.Error(t, err)
	assert.Nil(t, result)
}
