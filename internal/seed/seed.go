package seed

import (
	"context"
	"fmt"
	"log/slog"

	"socialfeed/internal/middleware"
	"socialfeed/internal/models"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"

	"gorm.io/gorm"
)

// batchSize bounds each bulk insert of generated posts.
const batchSize = 100

// Options configuration for the seeder
type Options struct {
	NumPosts    int
	MaxComments int
	ShouldClean bool
	Fixtures    *Fixtures
}

// Result counts what a run inserted.
type Result struct {
	Posts    int
	Comments int
}

// Seeder inserts demo data through the service layer so every row is normalized
// exactly like data arriving over HTTP.
type Seeder struct {
	db       *gorm.DB
	posts    *service.PostService
	comments *service.CommentService
	factory  *Factory
}

// NewSeeder binds a Seeder to db. A nil factory gets a randomly seeded one.
func NewSeeder(db *gorm.DB, factory *Factory) *Seeder {
	if factory == nil {
		factory = NewFactory(0)
	}
	postRepo := repository.NewPostRepository(db)
	return &Seeder{
		db:       db,
		posts:    service.NewPostService(postRepo),
		comments: service.NewCommentService(repository.NewCommentRepository(db), postRepo),
		factory:  factory,
	}
}

// ClearAll removes every comment and post.
func (s *Seeder) ClearAll(ctx context.Context) error {
	middleware.Logger.InfoContext(ctx, "clearing existing posts and comments")
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Comment{}).Error; err != nil {
			return fmt.Errorf("clear comments: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Post{}).Error; err != nil {
			return fmt.Errorf("clear posts: %w", err)
		}
		return nil
	})
}

// Run seeds fixtures when given, otherwise NumPosts generated posts with up to
// MaxComments comments each.
func (s *Seeder) Run(ctx context.Context, opts Options) (Result, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(ctx); err != nil {
			return Result{}, err
		}
	}

	var (
		res Result
		err error
	)
	if opts.Fixtures != nil {
		res, err = s.seedFixtures(ctx, opts.Fixtures)
	} else {
		res, err = s.seedGenerated(ctx, opts.NumPosts, opts.MaxComments)
	}
	if err != nil {
		return res, err
	}

	middleware.Logger.InfoContext(ctx, "database seeding completed",
		slog.Int("posts", res.Posts),
		slog.Int("comments", res.Comments),
	)
	return res, nil
}

func (s *Seeder) seedFixtures(ctx context.Context, fx *Fixtures) (Result, error) {
	var res Result
	inputs := make([]service.CreatePostInput, len(fx.Posts))
	for i, p := range fx.Posts {
		inputs[i] = p.input()
	}

	posts, err := s.posts.BulkCreatePosts(ctx, inputs)
	if err != nil {
		return res, fmt.Errorf("fixture posts: %w", err)
	}
	res.Posts = len(posts)

	for i, p := range fx.Posts {
		for _, c := range p.Comments {
			if _, _, err := s.comments.CreateComment(ctx, c.input(posts[i].ID)); err != nil {
				return res, fmt.Errorf("fixture comment on post %d: %w", posts[i].ID, err)
			}
			res.Comments++
		}
	}
	return res, nil
}

func (s *Seeder) seedGenerated(ctx context.Context, numPosts, maxComments int) (Result, error) {
	var res Result
	for done := 0; done < numPosts; {
		n := min(batchSize, numPosts-done)
		inputs := make([]service.CreatePostInput, n)
		for i := range inputs {
			inputs[i] = s.factory.PostInput()
		}

		posts, err := s.posts.BulkCreatePosts(ctx, inputs)
		if err != nil {
			return res, fmt.Errorf("generated posts: %w", err)
		}
		res.Posts += len(posts)
		done += n

		for _, p := range posts {
			if maxComments <= 0 {
				break
			}
			for c := s.factory.Number(0, maxComments); c > 0; c-- {
				if _, _, err := s.comments.CreateComment(ctx, s.factory.CommentInput(p.ID)); err != nil {
					return res, fmt.Errorf("generated comment on post %d: %w", p.ID, err)
				}
				res.Comments++
			}
		}
		middleware.Logger.InfoContext(ctx, "seeded batch", slog.Int("posts", res.Posts))
	}
	return res, nil
}
