package types

// Blob is an encoded image ready to be sent to a vision model
type Blob struct {
	MimeType string `json:"mime_type"`
	Data     []byte `json:"data"`
}

// PartKind identifies the content carried by a Part
type PartKind int

const (
	// PartImage carries a Blob
	PartImage PartKind = iota
	// PartText carries a string
	PartText
)

// Part is one ordered element of a multimodal prompt
type Part struct {
	Kind  PartKind
	Text  string
	Image *Blob
}

// Prompt is the content sent to the model for a single request
type Prompt struct {
	Parts []Part
}

// HasImage reports whether any part of the prompt is an image
func (p Prompt) HasImage() bool {
	for _, part := range p.Parts {
		if part.Kind == PartImage {
			return true
		}
	}
	return false
}

// Texts returns the text parts in order
func (p Prompt) Texts() []string {
	var out []string
	for _, part := range p.Parts {
		if part.Kind == PartText {
			out = append(out, part.Text)
		}
	}
	return out
}

// Images returns the image parts in order
func (p Prompt) Images() []Blob {
	var out []Blob
	for _, part := range p.Parts {
		if part.Kind == PartImage && part.Image != nil {
			out = append(out, *part.Image)
		}
	}
	return out
}

// Request is what a backend submits to the remote model
type Request struct {
	Model  string
	APIKey string
	Prompt Prompt
}

// Response is a completed generation. Text is nil when the model returned no text.
type Response struct {
	Text         *string
	FinishReason string
}
