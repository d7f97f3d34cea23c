package llm

// Role identifies who authored a conversation message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single turn in a conversation.
type Message struct {
	Role    Role
	Content string
}

// Request carries one completion call. System is kept apart from the
// conversation because every assistant prompt here starts from a fixed
// compliance persona.
type Request struct {
	Model       string
	System      string
	Messages    []Message
	MaxTokens   int
	Temperature float64
	JSONMode    bool
}

// Response is the provider's answer plus usage accounting.
type Response struct {
	Text         string
	InputTokens  int
	OutputTokens int
	Model        string
	StopReason   string
}
