package constants

// NotProvided is the placeholder the model writes for details absent from the input.
const NotProvided = "Not Provided"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Providers lists the accepted values for the llm.provider setting.
var Providers = []string{ProviderGemini, ProviderOpenAI}
