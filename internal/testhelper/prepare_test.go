package testhelper

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"gotest.tools/v3/assert"
)

func TestExecuteLines(t *testing.T) {
	fsys := afero.NewMemMapFs()

	err := ExecuteLines(
		fsys,
		"dir1/",
		"dir2/subdir/ 0o755",
		`file1.txt: "hello world"`,
		`file2.txt: 0o600 "restricted content"`,
		`nul.txt: "abc\x00"`,
	)
	assert.NilError(t, err)

	info, err := fsys.Stat("dir1")
	assert.NilError(t, err)
	assert.Assert(t, info.IsDir())

	info, err = fsys.Stat(filepath.Join("dir2", "subdir"))
	assert.NilError(t, err)
	assert.Assert(t, info.IsDir())

	content, err := afero.ReadFile(fsys, "file1.txt")
	assert.NilError(t, err)
	assert.Equal(t, "hello world", string(content))

	content, err = afero.ReadFile(fsys, "file2.txt")
	assert.NilError(t, err)
	assert.Equal(t, "restricted content", string(content))
	info, err = fsys.Stat("file2.txt")
	assert.NilError(t, err)
	assert.Equal(t, fs.FileMode(0o600), info.Mode().Perm())

	content, err = afero.ReadFile(fsys, "nul.txt")
	assert.NilError(t, err)
	assert.DeepEqual(t, []byte{'a', 'b', 'c', 0}, content)
}

func TestExecuteLinesOs(t *testing.T) {
	tempDir := t.TempDir()

	err := ExecuteLinesOs(tempDir, "sub/", `sub/test.rs: "fn main()"`)
	assert.NilError(t, err)

	content, err := os.ReadFile(filepath.Join(tempDir, "sub", "test.rs"))
	assert.NilError(t, err)
	assert.Equal(t, "fn main()", string(content))
}

func TestExecuteLines_InvalidLine(t *testing.T) {
	err := ExecuteLines(afero.NewMemMapFs(), "invalid line without pattern")
	assert.Error(t, err, `unknown line "invalid line without pattern"`)
}

func TestParseLine(t *testing.T) {
	type testCase struct {
		name     string
		line     string
		expected LineDirection
	}

	for _, tc := range []testCase{
		{
			name: "simple directory",
			line: "dir/",
			expected: LineDirection{
				LineKind: LineKindMkdir,
				Path:     "dir",
			},
		},
		{
			name: "directory with permission",
			line: "path/to/dir/ 0o700",
			expected: LineDirection{
				LineKind:   LineKindMkdir,
				Path:       "path/to/dir",
				Permission: 0o700,
			},
		},
		{
			name: "simple file",
			line: "file.txt: content",
			expected: LineDirection{
				LineKind: LineKindWriteFile,
				Path:     "file.txt",
				Content:  []byte("content"),
			},
		},
		{
			name: "quoted file with permission",
			line: `file.txt: 0o644 "two words"`,
			expected: LineDirection{
				LineKind:   LineKindWriteFile,
				Path:       "file.txt",
				Content:    []byte("two words"),
				Permission: 0o644,
			},
		},
		{
			name: "escaped content",
			line: `file.txt: "line\n\x00"`,
			expected: LineDirection{
				LineKind: LineKindWriteFile,
				Path:     "file.txt",
				Content:  []byte("line\n\x00"),
			},
		},
		{
			name:     "unquoted spaces",
			line:     "bad.txt: content with spaces",
			expected: LineDirection{},
		},
		{
			name:     "broken quote",
			line:     `bad.txt: "unterminated`,
			expected: LineDirection{},
		},
		{
			name:     "unknown pattern",
			line:     "no pattern here",
			expected: LineDirection{},
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			assert.DeepEqual(t, tc.expected, ParseLine(tc.line))
		})
	}
}
