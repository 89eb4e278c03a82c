package movie

import "context"

type Store interface {
	Get(id string) (Movie, bool)
	Put(m Movie)
	Len() int
	Ping(ctx context.Context) error
}
