package ai

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

var (
	encodingsMu sync.Mutex
	encodings   = map[string]*tiktoken.Tiktoken{}
)

// EstimateTokens counts tokens of text with the model's encoding, falling
// back to cl100k_base for non-OpenAI models. Returns 0 when no encoding loads.
func EstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}
	enc := encodingFor(model)
	if enc == nil {
		return 0
	}
	return len(enc.Encode(text, nil, nil))
}

func encodingFor(model string) *tiktoken.Tiktoken {
	encodingsMu.Lock()
	defer encodingsMu.Unlock()

	if enc, ok := encodings[model]; ok {
		return enc
	}
	enc, err := tiktoken.EncodingForModel(model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
		if err != nil {
			encodings[model] = nil
			return nil
		}
	}
	encodings[model] = enc
	return enc
}

// estimateUsage fills a UsageInfo from prompt and completion text.
func estimateUsage(model, systemPrompt, userPrompt, completion string) UsageInfo {
	prompt := EstimateTokens(model, systemPrompt) + EstimateTokens(model, userPrompt)
	completionTokens := EstimateTokens(model, completion)
	return UsageInfo{
		PromptTokens:     prompt,
		CompletionTokens: completionTokens,
		TotalTokens:      prompt + completionTokens,
		Estimated:        true,
	}
}
