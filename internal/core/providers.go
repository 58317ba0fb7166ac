package core

import "context"

// AIProvider completes a conversation with a hosted language model.
type AIProvider interface {
	Chat(ctx context.Context, history []Message) (Message, error)
}

// CatalogSearcher finds listings by free text.
type CatalogSearcher interface {
	Search(ctx context.Context, query string) ([]Listing, error)
}
