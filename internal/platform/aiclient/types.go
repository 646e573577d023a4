package aiclient

// chatRequest is the wire format of a chat-completions request.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

// chatMessage is a single message in a chat-completions request.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatResponse is the subset of the chat-completions response we read.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// startersPayload is the structured payload expected inside the generated
// text for a conversation-starter request.
type startersPayload struct {
	Starters []struct {
		Question     string `json:"question"`
		WhyItMatters string `json:"why_it_matters"`
	} `json:"starters"`
}

// explanationPayload is the structured payload for a term explanation.
type explanationPayload struct {
	Text    string `json:"text"`
	Analogy string `json:"analogy"`
}

// suggestionsPayload is the structured payload for topic suggestions.
type suggestionsPayload struct {
	Suggestions []struct {
		Title      string `json:"title"`
		Summary    string `json:"summary"`
		AgeBand    string `json:"age_band"`
		Difficulty int    `json:"difficulty"`
	} `json:"suggestions"`
}

// reflectionPayload is the structured payload for a journal reflection.
type reflectionPayload struct {
	Question string `json:"question"`
}
