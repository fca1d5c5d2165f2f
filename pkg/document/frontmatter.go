package document

import (
	"bytes"
	stderrors "errors"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var ErrFrontmatterInvalid = stderrors.New("invalid frontmatter")

const (
	frontmatterFormatYAML = "yaml"
	frontmatterFormatTOML = "toml"
)

// Frontmatter is the metadata header of a markdown source.
// Only document properties are interpreted; other keys are ignored.
type Frontmatter struct {
	Properties

	format string
}

func (f *Frontmatter) Format() string {
	if f == nil {
		return ""
	}
	return f.format
}

// splitFrontmatter separates a leading "---" (YAML) or "+++" (TOML)
// fenced header from the content. Sources without a header are
// returned unchanged as content.
func splitFrontmatter(source []byte) (raw []byte, format string, content []byte) {
	for _, candidate := range []struct {
		fence  []byte
		format string
	}{
		{[]byte("---"), frontmatterFormatYAML},
		{[]byte("+++"), frontmatterFormatTOML},
	} {
		rest, ok := cutFenceLine(source, candidate.fence)
		if !ok {
			continue
		}

		for offset := 0; offset < len(rest); {
			end := bytes.IndexByte(rest[offset:], '\n')
			line := rest[offset:]
			next := len(rest)
			if end >= 0 {
				line = rest[offset : offset+end]
				next = offset + end + 1
			}
			if bytes.Equal(bytes.TrimRight(line, " \t\r"), candidate.fence) {
				return rest[:offset], candidate.format, rest[next:]
			}
			offset = next
		}
	}

	return nil, "", source
}

func cutFenceLine(source, fence []byte) ([]byte, bool) {
	if !bytes.HasPrefix(source, fence) {
		return nil, false
	}
	rest := source[len(fence):]
	end := bytes.IndexByte(rest, '\n')
	if end < 0 || len(bytes.TrimSpace(rest[:end])) > 0 {
		return nil, false
	}
	return rest[end+1:], true
}

func parseFrontmatter(raw []byte, format string) (*Frontmatter, error) {
	f := &Frontmatter{format: format}

	var err error
	switch format {
	case frontmatterFormatYAML:
		err = yaml.Unmarshal(raw, &f.Properties)
	case frontmatterFormatTOML:
		err = toml.Unmarshal(raw, &f.Properties)
	default:
		return nil, errors.Errorf("unsupported frontmatter format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(ErrFrontmatterInvalid, err.Error())
	}

	return f, nil
}
