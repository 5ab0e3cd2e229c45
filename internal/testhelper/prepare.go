// Package testhelper defines some utilities to aid testing.
package testhelper

import (
	"cmp"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/afero"
)

// ExecuteLines prepares files and directories in fsys as described by lines.
//
//	dir/                       creates a directory
//	dir/ 0o700                 creates a directory with permission
//	file.txt: content          writes single word content
//	file.txt: "with\x00nul"    writes Go-quoted content
//	file.txt: 0o600 "content"  writes content with permission
func ExecuteLines(fsys afero.Fs, lines ...string) error {
	for _, line := range lines {
		l := ParseLine(line)
		if l.LineKind == "" {
			return fmt.Errorf("unknown line %q", line)
		}
		if err := l.Execute(fsys); err != nil {
			return err
		}
	}
	return nil
}

// ExecuteLinesOs is ExecuteLines on the OS filesystem rooted at baseDir.
func ExecuteLinesOs(baseDir string, lines ...string) error {
	return ExecuteLines(afero.NewBasePathFs(afero.NewOsFs(), baseDir), lines...)
}

type LineKind string

const (
	LineKindMkdir     LineKind = "mkdir"
	LineKindWriteFile LineKind = "write_file"
)

type LineDirection struct {
	LineKind   LineKind
	Permission fs.FileMode
	Path       string
	Content    []byte // for write file content
}

func ParseLine(txt string) LineDirection {
	switch {
	case strings.Contains(txt, "/ ") || strings.HasSuffix(txt, "/"):
		var suf string
		if strings.Contains(txt, "/ ") {
			txt, suf, _ = strings.Cut(txt, "/ ")
		} else {
			txt = strings.TrimSuffix(txt, "/")
		}
		var perm uint64
		if suf != "" {
			perm, _ = strconv.ParseUint(suf, 0, 64)
		}
		return LineDirection{
			LineKind:   LineKindMkdir,
			Path:       txt,
			Permission: fs.FileMode(perm),
		}
	case strings.Contains(txt, ": "):
		path, rest, _ := strings.Cut(txt, ": ")

		var perm uint64
		if permStr, remainder, ok := strings.Cut(rest, " "); ok {
			parsed, err := strconv.ParseUint(permStr, 0, 64)
			if err == nil {
				perm = parsed
				rest = remainder
			}
		}

		content := rest
		if strings.HasPrefix(rest, `"`) || strings.HasPrefix(rest, "`") {
			unquoted, err := strconv.Unquote(rest)
			if err != nil {
				return LineDirection{}
			}
			content = unquoted
		} else if strings.Contains(rest, " ") {
			// Unquoted content with spaces is ambiguous.
			return LineDirection{}
		}
		return LineDirection{
			LineKind:   LineKindWriteFile,
			Path:       path,
			Content:    []byte(content),
			Permission: fs.FileMode(perm),
		}
	}
	return LineDirection{}
}

func (l LineDirection) Execute(fsys afero.Fs) error {
	perm := cmp.Or(l.Permission, fs.ModePerm) & fs.ModePerm
	path := filepath.FromSlash(l.Path)
	switch l.LineKind {
	default:
		return nil
	case LineKindMkdir:
		err := fsys.MkdirAll(path, fs.ModePerm)
		if err != nil {
			return err
		}
		return fsys.Chmod(path, perm)
	case LineKindWriteFile:
		err := afero.WriteFile(fsys, path, l.Content, fs.ModePerm)
		if err != nil {
			return err
		}
		return fsys.Chmod(path, perm)
	}
}
