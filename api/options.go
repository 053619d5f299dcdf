package api

// Options is the plugin configuration accepted by the annotation pass.
// Keys use the kebab-case names build tools pass in their plugin config.
type Options struct {
	// Native selects React Native attribute names (camelCase) instead of
	// web attribute names (kebab-case).
	Native bool `json:"native"`
	// IgnoredComponents lists component and element names that never
	// receive attributes.
	IgnoredComponents []string `json:"ignored-components"`
	// ComponentAttr overrides the component attribute name.
	ComponentAttr *string `json:"component-attr,omitempty"`
	// ElementAttr overrides the element attribute name.
	ElementAttr *string `json:"element-attr,omitempty"`
	// SourceFileAttr overrides the source file attribute name.
	SourceFileAttr *string `json:"source-file-attr,omitempty"`
	// SourcePathAttr names the source path attribute. The attribute is only
	// emitted when this is set.
	SourcePathAttr *string `json:"source-path-attr,omitempty"`
	// RewriteEmotionStyled enables wrapping components passed to the
	// @emotion/styled helper so the styled component carries attributes.
	RewriteEmotionStyled bool `json:"rewrite-emotion-styled"`
}

// DefaultOptions returns the configuration used when none is given or the
// given one cannot be decoded.
func DefaultOptions() Options {
	return Options{}
}

// String returns a pointer to s, for filling the optional override fields.
func String(s string) *string {
	return &s
}
