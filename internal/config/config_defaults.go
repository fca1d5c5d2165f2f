package config

var defaults Config

// Default returns a copy of the default configuration.
func Default() *Config {
	c := defaults
	return &c
}

const defaultYAML = `version: v1

# Properties written into every exported document.
# A frontmatter in the source document overrides them.
document:
  title: "Buat Docx"
  creator: "buatdocx"
  description: ""

export:
  # Size of text runs in half-points; 24 is 12pt.
  text_size: 24
  # Draw a bottom border under every text paragraph.
  thematic_break: true
  # Directory for timestamped "document <ms>.docx" files.
  output_dir: "."

log:
  enabled: false
  path: ""
  verbose: false
`

func newDefault() (*Config, error) {
	var c Config
	if err := applyYAML(&c, []byte(defaultYAML)); err != nil {
		return nil, err
	}
	if err := validateConfig(&c); err != nil {
		return nil, err
	}
	return &c, nil
}

func init() {
	cfg, err := newDefault()
	if err != nil {
		panic(err)
	}
	defaults = *cfg
}
