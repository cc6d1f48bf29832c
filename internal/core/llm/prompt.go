package llm

// SystemPrompt frames every naming request.
const SystemPrompt = "You are a helpful assistant that creates clean filenames."

// BuildNamingPrompt asks for a short descriptive name for text.
func BuildNamingPrompt(text string) string {
	return "Based on this text, suggest a clean, short, descriptive filename in 4–6 words. " +
		"Do not include file extension or special characters.\n\n" + text
}
