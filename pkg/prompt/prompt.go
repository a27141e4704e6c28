// Package prompt assembles multimodal prompts.
package prompt

import "github.com/menta2k/gemini-analyzer/pkg/types"

// DefaultQuestion asks for the readings shown on a smart plug display
const DefaultQuestion = "Extract the " +
	"power consumption (in watts), " +
	"temperature (in degrees celsius) " +
	"and relative humidity (RH %) from the image. " +
	"Answer with a JSON object."

// Builder accumulates parts in call order
type Builder struct {
	parts []types.Part
}

// New returns an empty Builder
func New() *Builder {
	return &Builder{}
}

// Image appends an image part
func (b *Builder) Image(img types.Blob) *Builder {
	b.parts = append(b.parts, types.Part{Kind: types.PartImage, Image: &img})
	return b
}

// Text appends a text part
func (b *Builder) Text(text string) *Builder {
	b.parts = append(b.parts, types.Part{Kind: types.PartText, Text: text})
	return b
}

// Build returns the prompt. The builder may be reused afterwards.
func (b *Builder) Build() types.Prompt {
	parts := make([]types.Part, len(b.parts))
	copy(parts, b.parts)
	return types.Prompt{Parts: parts}
}

// ForImage returns the two-part prompt [image, question]
func ForImage(img types.Blob, question string) types.Prompt {
	return New().Image(img).Text(question).Build()
}
