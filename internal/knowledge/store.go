package knowledge

import (
	"context"
	"fmt"

	chromem "github.com/philippgille/chromem-go"

	"github.com/mydpo/mydpo/internal/embeddings"
)

const collectionName = "guidance"

// Store holds the guidance knowledge base in a chromem-go vector store.
type Store struct {
	db         *chromem.DB
	collection *chromem.Collection
	embedFunc  chromem.EmbeddingFunc
}

// NewStore creates an in-memory knowledge store backed by the embedder.
func NewStore(embedder embeddings.Embedder) (*Store, error) {
	db := chromem.NewDB()
	ef := embeddings.ToChromemFunc(embedder)

	col, err := db.GetOrCreateCollection(collectionName, nil, ef)
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return &Store{db: db, collection: col, embedFunc: ef}, nil
}

// Add indexes articles into the knowledge base.
func (s *Store) Add(ctx context.Context, articles []Article) error {
	if len(articles) == 0 {
		return nil
	}
	docs := make([]chromem.Document, len(articles))
	for i, a := range articles {
		docs[i] = chromem.Document{
			ID:      a.ID,
			Content: a.Content,
			Metadata: map[string]string{
				"title":  a.Title,
				"topic":  string(a.Topic),
				"source": a.Source,
			},
		}
	}
	return s.collection.AddDocuments(ctx, docs, 1)
}

// Search returns the articles most similar to the query, optionally
// restricted to one topic.
func (s *Store) Search(ctx context.Context, query string, limit int, topic Topic) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 5
	}
	count := s.collection.Count()
	if count == 0 {
		return nil, nil
	}
	if limit > count {
		limit = count
	}

	var where map[string]string
	if topic != "" {
		where = map[string]string{"topic": string(topic)}
	}

	results, err := s.collection.Query(ctx, query, limit, where, nil)
	if err != nil {
		return nil, fmt.Errorf("knowledge query: %w", err)
	}

	out := make([]SearchResult, len(results))
	for i, r := range results {
		out[i] = SearchResult{
			Article: Article{
				ID:      r.ID,
				Title:   r.Metadata["title"],
				Topic:   Topic(r.Metadata["topic"]),
				Source:  r.Metadata["source"],
				Content: r.Content,
			},
			Similarity: r.Similarity,
		}
	}
	return out, nil
}

// Count returns the number of indexed articles.
func (s *Store) Count() int {
	return s.collection.Count()
}

// Persist writes the knowledge base to a file under dir.
func (s *Store) Persist(dir string) error {
	return s.db.ExportToFile(dir+"/knowledge.gob.gz", true, "")
}

// Load restores a previously persisted knowledge base.
func (s *Store) Load(dir string) error {
	if err := s.db.ImportFromFile(dir+"/knowledge.gob.gz", ""); err != nil {
		return fmt.Errorf("import knowledge base: %w", err)
	}
	col := s.db.GetCollection(collectionName, s.embedFunc)
	if col == nil {
		return fmt.Errorf("collection %q missing after import", collectionName)
	}
	s.collection = col
	return nil
}
