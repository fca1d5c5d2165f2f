package cmd

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/stateful/buatdocx/internal/config"
	"github.com/stateful/buatdocx/internal/config/autoconfig"
	"github.com/stateful/buatdocx/pkg/document"
)

const (
	formatMarkdown = "markdown"
	formatJSON     = "json"
	formatText     = "text"
)

var (
	successColor = color.New(color.FgGreen)
	noteColor    = color.New(color.FgYellow)
)

// sourceFS is where source documents are read from.
var sourceFS billy.Filesystem = osfs.Default

// newBuilder applies the persistent flags on top of autoconfig.
// source is the document being processed; its directory
// contributes nested configuration files.
func newBuilder(source string) (*autoconfig.Builder, error) {
	b := autoconfig.NewBuilder()

	if fConfig != "" {
		path := fConfig
		if err := b.Decorate(func() (*config.Loader, error) {
			if _, err := os.Stat(path); err != nil {
				return nil, errors.Wrapf(err, "failed to read config %q", path)
			}
			name := filepath.Base(path)
			ext := filepath.Ext(name)
			return config.NewLoader(
				strings.TrimSuffix(name, ext),
				strings.TrimPrefix(ext, "."),
				os.DirFS(filepath.Dir(path)),
			), nil
		}); err != nil {
			return nil, err
		}
	} else if rel, ok := relativeToCwd(source); ok {
		if err := b.Decorate(func(autoconfig.SourcePath) autoconfig.SourcePath {
			return autoconfig.SourcePath(rel)
		}); err != nil {
			return nil, err
		}
	}

	if fVerbose {
		if err := b.Decorate(func(c *config.Config) *config.Config {
			c.Log.Enabled = true
			c.Log.Verbose = true
			return c
		}); err != nil {
			return nil, err
		}
	}

	return b, nil
}

func relativeToCwd(source string) (string, bool) {
	if source == "" || source == "-" {
		return "", false
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", false
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return "", false
	}
	rel, err := filepath.Rel(cwd, abs)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(rel), true
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		return data, errors.Wrap(err, "failed to read from stdin")
	}
	data, err := util.ReadFile(sourceFS, name)
	return data, errors.Wrapf(err, "failed to read file %q", name)
}

// detectFormat returns format or, when it is empty, guesses it
// from the file extension and the content.
func detectFormat(name, format string, data []byte) (string, error) {
	switch format {
	case formatMarkdown, formatJSON:
		return format, nil
	case "":
	default:
		return "", errors.Errorf("unsupported format %q", format)
	}

	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return formatJSON, nil
	case ".md", ".markdown", ".txt":
		return formatMarkdown, nil
	}

	trimmed := bytes.TrimSpace(data)
	if bytes.HasPrefix(trimmed, []byte("[")) || bytes.HasPrefix(trimmed, []byte("{")) {
		return formatJSON, nil
	}
	return formatMarkdown, nil
}

func readSource(cmd *cobra.Command, name, format string) (*document.Source, error) {
	data, err := readInput(cmd, name)
	if err != nil {
		return nil, err
	}

	format, err = detectFormat(name, format, data)
	if err != nil {
		return nil, err
	}

	var src *document.Source
	switch format {
	case formatJSON:
		src, err = document.ParseJSON(data)
	default:
		src, err = document.ParseMarkdown(data)
	}
	return src, errors.WithMessagef(err, "failed to parse %s", name)
}
