package knowledge

// Topic groups guidance articles by compliance area.
type Topic string

const (
	TopicDPO          Topic = "dpo"
	TopicRegistration Topic = "registration"
	TopicSecurity     Topic = "security"
	TopicConsent      Topic = "consent"
	TopicIncidents    Topic = "incidents"
	TopicRights       Topic = "rights"
	TopicEnforcement  Topic = "enforcement"
)

// Article is one guidance text in the knowledge base.
type Article struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Topic   Topic  `json:"topic"`
	Source  string `json:"source"`
	Content string `json:"content"`
}

// SearchResult pairs an article with its semantic similarity to the query.
type SearchResult struct {
	Article    Article `json:"article"`
	Similarity float32 `json:"similarity"`
}
