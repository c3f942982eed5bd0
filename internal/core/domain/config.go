package domain

// Default pipeline parameters.
const (
	// DefaultChunkSize is the chunk window size in characters.
	DefaultChunkSize = 800

	// DefaultOverlap is the overlap between adjacent chunks in
	// characters.
	DefaultOverlap = 120

	// DefaultTopK is how many passages to retrieve per question.
	DefaultTopK = 5

	// DefaultMaxAnswerTokens caps the generated answer length.
	DefaultMaxAnswerTokens = 256

	// DefaultMeanThreshold is the minimum acceptable average
	// similarity for a grounded answer.
	DefaultMeanThreshold = 0.4

	// DefaultMinThreshold is the minimum acceptable worst-case
	// similarity for a grounded answer.
	DefaultMinThreshold = 0.3
)

// PromptLanguage selects the language of the prompt instructions.
type PromptLanguage string

// Supported prompt languages.
const (
	PromptPortuguese PromptLanguage = "pt"
	PromptEnglish    PromptLanguage = "en"
)

// IsValid returns true if the language is supported.
func (l PromptLanguage) IsValid() bool {
	return l == PromptPortuguese || l == PromptEnglish
}

// Thresholds are the routing thresholds, fixed per deployment. The
// router never mutates them at runtime.
type Thresholds struct {
	// Mean is the minimum average similarity; below it the router
	// falls back.
	Mean float64

	// Min is the minimum worst-case similarity; any retrieved result
	// below it triggers fallback.
	Min float64
}

// DefaultThresholds returns the deployment defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{Mean: DefaultMeanThreshold, Min: DefaultMinThreshold}
}

// ChunkingParams are the chunker inputs shared by build and settings.
type ChunkingParams struct {
	// Size is the maximum chunk length in characters.
	Size int

	// Overlap is how many trailing characters each chunk shares with
	// its successor. Must satisfy 0 <= Overlap < Size.
	Overlap int
}

// Validate rejects unusable chunking parameters before any work
// starts.
func (p ChunkingParams) Validate() error {
	if p.Size <= 0 {
		return ErrInvalidChunking
	}
	if p.Overlap < 0 || p.Overlap >= p.Size {
		return ErrInvalidChunking
	}
	return nil
}
