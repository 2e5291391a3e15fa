package models

// DocParam is one parameter documented in a doc block.
type DocParam struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
	IsOptional  bool   `json:"isOptional"`
}

// DocReturn is a documented return value.
type DocReturn struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// DocThrows is one documented failure condition.
type DocThrows struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// DocTag is an unrecognized tag captured as-is.
type DocTag struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

// ParsedDoc is the normalized content of one documentation block.
// All fields are best-effort: a malformed block degrades to free-text
// Description with everything else empty.
type ParsedDoc struct {
	Description string      `json:"description"`
	Params      []DocParam  `json:"params"`
	Returns     *DocReturn  `json:"returns,omitempty"`
	Throws      []DocThrows `json:"throws,omitempty"`
	Deprecated  string      `json:"deprecated,omitempty"`
	Since       string      `json:"since,omitempty"`
	OtherTags   []DocTag    `json:"otherTags,omitempty"`
}

// Param returns the documented parameter with the given name, or nil.
func (d *ParsedDoc) Param(name string) *DocParam {
	for i := range d.Params {
		if d.Params[i].Name == name {
			return &d.Params[i]
		}
	}
	return nil
}
