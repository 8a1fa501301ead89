package inter

import (
	"context"
	"errors"
)

// sealCheckInterval is how many attempts Seal makes between context checks.
const sealCheckInterval = 1024

// ErrSealExhausted is returned when every work value has been tried.
var ErrSealExhausted = errors.New("seal: work space exhausted")

// Seal searches for a work value that makes the post (prev, work, body) meet
// minScore, starting at startWork and counting up. The result is never the
// genesis post. Seal stops with ctx.Err() when the context is cancelled.
func Seal(ctx context.Context, prev Word, body Body, minScore, startWork Word) (Post, error) {
	one := WordFromUint64(1)
	work := startWork
	for attempt := uint64(0); ; attempt++ {
		if attempt%sealCheckInterval == 0 {
			select {
			case <-ctx.Done():
				return Post{}, ctx.Err()
			default:
			}
		}

		post := NewPost(prev, work, body)
		if !post.IsGenesis() && MeetsTarget(post.Hash(), minScore) {
			return post, nil
		}

		work.Add(&work, &one)
		if work == startWork {
			return Post{}, ErrSealExhausted
		}
	}
}
