package types

import "fmt"

// Model is a supported model option, chosen by capability
type Model int

const (
	// ModelText accepts text-only prompts
	ModelText Model = iota
	// ModelVision accepts prompts with image parts
	ModelVision
)

// String returns the default Gemini identifier for the option
func (m Model) String() string {
	switch m {
	case ModelText:
		return "gemini-pro"
	case ModelVision:
		return "gemini-pro-vision"
	default:
		return fmt.Sprintf("model(%d)", int(m))
	}
}

// SupportsImages reports whether the option accepts image parts
func (m Model) SupportsImages() bool {
	return m == ModelVision
}

// ModelFor picks the option able to serve the prompt
func ModelFor(p Prompt) Model {
	if p.HasImage() {
		return ModelVision
	}
	return ModelText
}

// ModelNames maps each option to the identifier a backend expects
type ModelNames struct {
	Text   string
	Vision string
}

// DefaultModelNames returns the Gemini identifiers
func DefaultModelNames() ModelNames {
	return ModelNames{
		Text:   ModelText.String(),
		Vision: ModelVision.String(),
	}
}

// Name resolves an option, falling back to the default identifier when unset
func (n ModelNames) Name(m Model) string {
	switch m {
	case ModelVision:
		if n.Vision != "" {
			return n.Vision
		}
	case ModelText:
		if n.Text != "" {
			return n.Text
		}
	}
	return m.String()
}
