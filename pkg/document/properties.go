package document

// Properties are document-level metadata written into the exported package.
type Properties struct {
	Title       string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty"`
	Creator     string `json:"creator,omitempty" yaml:"creator,omitempty" toml:"creator,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
}

// Merge returns p with empty fields taken from fallback.
func (p Properties) Merge(fallback Properties) Properties {
	if p.Title == "" {
		p.Title = fallback.Title
	}
	if p.Creator == "" {
		p.Creator = fallback.Creator
	}
	if p.Description == "" {
		p.Description = fallback.Description
	}
	return p
}
