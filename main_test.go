package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phobologic/swaglint/internal/config"
	"github.com/phobologic/swaglint/internal/model"
)

func writeTestFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// createSampleProject lays out a controller with an undocumented path
// parameter and a DTO, outside src/, with an undocumented field.
func createSampleProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "src/users/users.controller.ts", `import { CreateUserDto } from '../../libs/dto/create-user.dto';

@Controller('users')
export class UsersController {
  @Get(':id')
  @ApiOperation({ summary: 'Get user', description: 'Returns one user' })
  findOne(@Param('id') id: string) {}

  @Post()
  @ApiOperation({ summary: 'Create user', description: 'Creates a user' })
  create(@Body() dto: CreateUserDto) {}
}
`)
	writeTestFile(t, dir, "libs/dto/create-user.dto.ts", `export class CreateUserDto {
  @ApiProperty({ description: 'Name', example: 'Ada' })
  name: string;

  email: string;
}
`)
	return dir
}

func createCleanProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeTestFile(t, dir, "src/health.controller.ts", `@Controller('health')
export class HealthController {
  @Get()
  @ApiOperation({ summary: 'Health', description: 'Reports liveness' })
  check() {}
}
`)
	return dir
}

func TestRunReportsProblems(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-q", dir}, &stdout, &stderr)
	require.ErrorIs(t, err, errViolations)

	out := stdout.String()
	assert.Contains(t, out, "libs/dto/create-user.dto.ts\n  5:3  PropertyError")
	assert.Contains(t, out, "src/users/users.controller.ts\n  7:3  ParamError")
	assert.True(t, strings.HasSuffix(out, "2 problems (1 ParamError, 1 PropertyError)\n"), out)
	assert.Empty(t, stderr.String(), "quiet run must not echo")
}

func TestRunEchoesToStderr(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{dir}, &stdout, &stderr)
	require.ErrorIs(t, err, errViolations)

	lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, "file://"), line)
	}
	assert.NotContains(t, stdout.String(), "file://")
}

func TestRunClean(t *testing.T) {
	t.Parallel()
	dir := createCleanProject(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{dir}, &stdout, &stderr))
	assert.Equal(t, "no problems found\n", stdout.String())
}

func TestRunJSON(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-q", "--format", "json", dir}, &stdout, &stderr)
	require.ErrorIs(t, err, errViolations)

	var got struct {
		Root        string             `json:"root"`
		Total       int                `json:"total"`
		Counts      map[string]int     `json:"counts"`
		Diagnostics []model.Diagnostic `json:"diagnostics"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &got))

	abs, err := filepath.Abs(dir)
	require.NoError(t, err)
	assert.Equal(t, abs, got.Root)
	assert.Equal(t, 2, got.Total)
	assert.Equal(t, map[string]int{"InformationError": 0, "ParamError": 1, "PropertyError": 1}, got.Counts)
	require.Len(t, got.Diagnostics, 2)
	assert.Equal(t, "libs/dto/create-user.dto.ts", got.Diagnostics[0].File)
}

func TestRunTOON(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{"-q", "-f", "TOON", dir}, &stdout, &stderr)
	require.ErrorIs(t, err, errViolations)

	out := stdout.String()
	assert.Contains(t, out, "total: 2")
	assert.Contains(t, out, "diagnostics[2]{file,line,column,kind,message}:")
}

func TestRunFilters(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	tests := []struct {
		name    string
		args    []string
		summary string
	}{
		{"kind", []string{"--kind", "ParamError"}, "1 problem (1 ParamError)"},
		{"kind case-insensitive", []string{"--kind", "propertyerror"}, "1 problem (1 PropertyError)"},
		{"repeated kind", []string{"--kind", "ParamError", "--kind", "PropertyError"}, "2 problems (1 ParamError, 1 PropertyError)"},
		{"file", []string{"--file", "DTO"}, "1 problem (1 PropertyError)"},
		{"max files breaks ties by path", []string{"-n", "1"}, "1 problem (1 PropertyError)"},
		{"no match", []string{"--kind", "InformationError"}, "no problems found"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			args := append([]string{"-q"}, tt.args...)
			err := run(append(args, dir), &stdout, &stderr)
			if tt.summary == "no problems found" {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, errViolations)
			}
			assert.True(t, strings.HasSuffix(stdout.String(), tt.summary+"\n"), stdout.String())
		})
	}
}

func TestRunSetOverrides(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	var stdout, stderr bytes.Buffer
	err := run([]string{
		"--set", "scopes.endpoint.params.check=false",
		"--set", "scopes.endpoint.payload.check=false",
		dir,
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "no problems found\n", stdout.String())
}

func TestRunConfigFile(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)
	cfgPath := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("scopes:\n  endpoint:\n    params:\n      check: false\n"), 0o644))

	var stdout, stderr bytes.Buffer
	err := run([]string{"-q", "-c", cfgPath, dir}, &stdout, &stderr)
	require.ErrorIs(t, err, errViolations)
	assert.True(t, strings.HasSuffix(stdout.String(), "1 problem (1 PropertyError)\n"), stdout.String())
}

func TestRunPattern(t *testing.T) {
	t.Parallel()
	dir := createSampleProject(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-p", "libs/**/*.ts", dir}, &stdout, &stderr))
	assert.Equal(t, "no problems found\n", stdout.String())
}

func TestRunVerbose(t *testing.T) {
	t.Parallel()
	dir := createCleanProject(t)

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-v", dir}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "project loaded")
	assert.Contains(t, stderr.String(), "lint finished")
}

func TestRunVersion(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"--version"}, &stdout, &stderr))
	assert.Equal(t, "swaglint version dev\n", stdout.String())
}

func TestRunErrors(t *testing.T) {
	t.Parallel()
	dir := createCleanProject(t)
	badConfig := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(badConfig, []byte("scopes:\n  endpoint:\n    summary:\n      pattern: '(['\n"), 0o644))

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"unknown format", []string{"-f", "xml", dir}, nil},
		{"unknown kind", []string{"--kind", "Nope", dir}, nil},
		{"too many args", []string{dir, dir}, nil},
		{"missing root", []string{filepath.Join(dir, "missing")}, nil},
		{"empty root", []string{t.TempDir()}, nil},
		{"missing config", []string{"-c", filepath.Join(dir, "none.yaml"), dir}, nil},
		{"invalid config", []string{"-c", badConfig, dir}, config.ErrInvalid},
		{"malformed set", []string{"--set", "novalue", dir}, nil},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			require.Error(t, err)
			assert.NotErrorIs(t, err, errViolations)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}

func TestParseKinds(t *testing.T) {
	t.Parallel()

	kinds, err := parseKinds([]string{"paramerror", " InformationError "})
	require.NoError(t, err)
	assert.Equal(t, []model.Kind{model.ParamError, model.InformationError}, kinds)

	kinds, err = parseKinds(nil)
	require.NoError(t, err)
	assert.Empty(t, kinds)

	_, err = parseKinds([]string{"Warning"})
	assert.Error(t, err)
}
