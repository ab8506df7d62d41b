// Package seed provides helpers to create demo data for development databases.
package seed

import (
	"fmt"
	"time"

	"postboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
)

// Options tunes generated data.
type Options struct {
	Posts        int
	LikesPerPost int
	// MaxDays spreads created_at over the last MaxDays days.
	MaxDays int
	// ImageRatio is the share of posts that carry an imageUrl, between 0 and 1.
	ImageRatio float64
	// Seed makes output reproducible when non-zero.
	Seed int64
}

// Factory builds posts and user IDs with gofakeit.
type Factory struct {
	faker *gofakeit.Faker
	opts  Options
}

// NewFactory creates a Factory. A zero Seed draws from the clock.
func NewFactory(opts Options) *Factory {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 30
	}
	return &Factory{faker: gofakeit.New(seed), opts: opts}
}

// BuildPost returns an unsaved post with realistic content and a created_at in the past.
func (f *Factory) BuildPost(overrides ...func(*models.Post)) *models.Post {
	author := f.UserID()
	post := &models.Post{
		Content: f.faker.Paragraph(1, 3, 12, " "),
		UserID:  &author,
	}

	minutesBack := f.faker.Number(0, f.opts.MaxDays*24*60)
	post.CreatedAt = time.Now().Add(-time.Duration(minutesBack) * time.Minute)
	post.UpdatedAt = post.CreatedAt

	if f.faker.Float64Range(0, 1) < f.opts.ImageRatio {
		url := fmt.Sprintf("https://picsum.photos/seed/%s/800/600", f.faker.UUID())
		post.ImageURL = &url
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// UserID returns a plausible free-form user identifier.
func (f *Factory) UserID() string {
	return f.faker.Username()
}

// DistinctUserIDs returns n different user identifiers.
func (f *Factory) DistinctUserIDs(n int) []string {
	seen := make(map[string]struct{}, n)
	ids := make([]string, 0, n)
	for len(ids) < n {
		id := f.UserID()
		if _, dup := seen[id]; dup {
			id = fmt.Sprintf("%s%d", id, len(ids))
			if _, dup := seen[id]; dup {
				continue
			}
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}
