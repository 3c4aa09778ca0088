package models

import "fmt"

// DefaultBaseURL is the REST endpoint for the Generative Language API.
const DefaultBaseURL = "https://generativelanguage.googleapis.com"

// GenerateContentPath returns the request path for a model's generateContent call.
func GenerateContentPath(model string) string {
	return fmt.Sprintf("/v1beta/models/%s:generateContent", model)
}

// Generation parameters. Fixed for every exchange.
const (
	GenerationTemperature     = 0.7
	GenerationTopK            = 40
	GenerationTopP            = 0.95
	GenerationMaxOutputTokens = 1024
)

// Available models
const (
	ModelFlash     = "gemini-2.5-flash"
	ModelFlashLite = "gemini-2.5-flash-lite"
	ModelPro       = "gemini-2.5-pro"

	// DefaultModel is the recommended default
	DefaultModel = ModelFlash
)

// AllModels returns a list of all available model names.
func AllModels() []string {
	return []string{ModelFlash, ModelFlashLite, ModelPro}
}

// ResolveModel maps a model name or short alias to a full model name.
// Unknown names pass through unchanged so new models work without a release.
func ResolveModel(name string) string {
	switch name {
	case "", "fast":
		return ModelFlash
	case "lite":
		return ModelFlashLite
	case "pro":
		return ModelPro
	default:
		return name
	}
}

// DefaultLanguage is the target reply language when none is configured.
const DefaultLanguage = "Japanese"

// SystemInstruction returns the fixed system instruction sent with every
// request: a courteous assistant that must reply in the target language.
func SystemInstruction(language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	return fmt.Sprintf("You are a courteous conversation partner for language learners. Always reply in %s.", language)
}

// Greeting is the assistant turn every transcript is seeded with.
const Greeting = "こんにちは！ I'm your conversation partner. Ask me anything and I'll answer in Japanese."

// GreetingFor returns the seed greeting for the given target language.
func GreetingFor(language string) string {
	if language == "" || language == DefaultLanguage {
		return Greeting
	}
	return fmt.Sprintf("Hello! I'm your conversation partner. Ask me anything and I'll answer in %s.", language)
}
