package seed

import (
	"context"
	"fmt"
	"log/slog"

	"postboard/internal/middleware"
	"postboard/internal/repository"
)

// Result summarizes a seeding run.
type Result struct {
	Posts int
	Likes int
}

// Seeder writes generated data through the repositories so the same constraints apply.
type Seeder struct {
	posts   repository.PostRepository
	likes   repository.LikeRepository
	factory *Factory
	opts    Options
}

func NewSeeder(posts repository.PostRepository, likes repository.LikeRepository, opts Options) *Seeder {
	return &Seeder{
		posts:   posts,
		likes:   likes,
		factory: NewFactory(opts),
		opts:    opts,
	}
}

// Run creates opts.Posts posts. Each receives up to opts.LikesPerPost likes from distinct users.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result
	for i := 0; i < s.opts.Posts; i++ {
		post := s.factory.BuildPost()
		if err := s.posts.Create(ctx, post); err != nil {
			return res, fmt.Errorf("seed post %d: %w", i+1, err)
		}
		res.Posts++

		likes := 0
		if s.opts.LikesPerPost > 0 {
			likes = s.factory.faker.Number(0, s.opts.LikesPerPost)
		}
		for _, userID := range s.factory.DistinctUserIDs(likes) {
			if err := s.likes.Create(ctx, post.ID, userID); err != nil {
				return res, fmt.Errorf("seed like on post %d: %w", post.ID, err)
			}
			res.Likes++
		}
	}

	middleware.Logger.InfoContext(ctx, "Seeding completed",
		slog.Int("posts", res.Posts),
		slog.Int("likes", res.Likes),
	)
	return res, nil
}
