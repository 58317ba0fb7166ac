package core

import "context"

type ListingRepository interface {
	Search(ctx context.Context, term string) ([]Listing, error)
	Get(ctx context.Context, id int64) (Listing, error)
	All(ctx context.Context) ([]Listing, error)
	Create(ctx context.Context, l Listing) (int64, error)
	Update(ctx context.Context, id int64, u ListingUpdate) error
	Delete(ctx context.Context, id int64) error
}

type SpecRepository interface {
	List(ctx context.Context) ([]Spec, error)
}
