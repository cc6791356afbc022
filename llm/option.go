package llm

type GenerateOptions struct {
	Temperature float32
	MaxTokens   int
	StopWords   []string
	JSONMode    bool
}

type GenerateOption func(*GenerateOptions)

func DefaultGenerateOptions() *GenerateOptions {
	return &GenerateOptions{
		Temperature: 0,
	}
}

// WithTemperature sets the sampling temperature for one call.
func WithTemperature(temperature float32) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.Temperature = temperature
	}
}

// WithMaxTokens bounds the completion length.
func WithMaxTokens(maxTokens int) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.MaxTokens = maxTokens
	}
}

// WithStopWords sets stop sequences for one call.
func WithStopWords(stopWords []string) GenerateOption {
	return func(opts *GenerateOptions) {
		opts.StopWords = stopWords
	}
}

// WithJSONMode forces the provider to return a JSON object.
func WithJSONMode() GenerateOption {
	return func(opts *GenerateOptions) {
		opts.JSONMode = true
	}
}
