// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"

	"sensei/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
}

// DefaultPassword is the password every seeded user gets.
const DefaultPassword = "password123"

var categories = []string{
	models.CategoryQuestion,
	models.CategoryDiscussion,
	models.CategoryProject,
	models.CategoryAnnouncement,
	models.CategoryOther,
}

// Seed populates the database with test data
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	users, err := createUsers(db, opts.NumUsers)
	if err != nil {
		return fmt.Errorf("failed to create users: %w", err)
	}
	log.Printf("created %d users", len(users))

	posts, err := createPosts(db, users, opts.NumPosts)
	if err != nil {
		return fmt.Errorf("failed to create posts: %w", err)
	}
	log.Printf("created %d posts", len(posts))

	comments, err := createComments(db, users, posts)
	if err != nil {
		return fmt.Errorf("failed to create comments: %w", err)
	}
	log.Printf("created %d comments", len(comments))

	replies, err := createReplies(db, users, comments)
	if err != nil {
		return fmt.Errorf("failed to create replies: %w", err)
	}
	log.Printf("created %d replies", len(replies))

	reactions, err := createReactions(db, users, posts, comments, replies)
	if err != nil {
		return fmt.Errorf("failed to create reactions: %w", err)
	}
	log.Printf("created %d reactions", reactions)

	return nil
}

func clearData(db *gorm.DB) error {
	// Children first so foreign keys never dangle.
	for _, model := range []any{
		&models.Reaction{}, &models.Reply{}, &models.Comment{}, &models.Post{}, &models.User{},
	} {
		if err := db.Unscoped().Where("1 = 1").Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}

func createUsers(db *gorm.DB, count int) ([]models.User, error) {
	// One hash for everyone; bcrypt per user makes big seeds crawl.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		first := gofakeit.FirstName()
		last := gofakeit.LastName()
		user := models.User{
			Username:    fmt.Sprintf("%s_%s%d", first, last, gofakeit.Number(100, 999)),
			DisplayName: fmt.Sprintf("%s %s", first, last),
			Email:       fmt.Sprintf("%d_%s", i, gofakeit.Email()),
			Password:    string(hash),
			Role:        models.RoleStudent,
			Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		}
		if i == 0 {
			user.Username = "admin"
			user.DisplayName = "Site Admin"
			user.Email = "admin@sensei.dev"
			user.Role = models.RoleAdmin
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func createPosts(db *gorm.DB, users []models.User, count int) ([]models.Post, error) {
	if len(users) == 0 {
		return nil, nil
	}

	posts := make([]models.Post, 0, count)
	for i := 0; i < count; i++ {
		post := models.Post{
			Title:    gofakeit.Sentence(6),
			Content:  gofakeit.Paragraph(1, 3, 8, "\n"),
			Category: categories[rand.Intn(len(categories))],
			UserID:   users[rand.Intn(len(users))].ID,
		}
		if err := db.Create(&post).Error; err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func createComments(db *gorm.DB, users []models.User, posts []models.Post) ([]models.Comment, error) {
	var comments []models.Comment
	for _, post := range posts {
		for i := 0; i < rand.Intn(4); i++ {
			comment := models.Comment{
				Content: gofakeit.Sentence(12),
				PostID:  post.ID,
				UserID:  users[rand.Intn(len(users))].ID,
			}
			if err := db.Create(&comment).Error; err != nil {
				return nil, err
			}
			comments = append(comments, comment)
		}
	}
	return comments, nil
}

func createReplies(db *gorm.DB, users []models.User, comments []models.Comment) ([]models.Reply, error) {
	var replies []models.Reply
	for _, comment := range comments {
		for i := 0; i < rand.Intn(3); i++ {
			reply := models.Reply{
				Content:   gofakeit.Sentence(10),
				CommentID: comment.ID,
				UserID:    users[rand.Intn(len(users))].ID,
			}
			if err := db.Create(&reply).Error; err != nil {
				return nil, err
			}
			replies = append(replies, reply)
		}
	}
	return replies, nil
}

// createReactions sprinkles likes and dislikes across posts, comments and
// replies. Each user reacts at most once per subject, matching the unique
// index on reactions.
func createReactions(db *gorm.DB, users []models.User, posts []models.Post, comments []models.Comment, replies []models.Reply) (int, error) {
	type subject struct {
		kind string
		id   uint
	}

	var subjects []subject
	for _, p := range posts {
		subjects = append(subjects, subject{models.SubjectPost, p.ID})
	}
	for _, c := range comments {
		subjects = append(subjects, subject{models.SubjectComment, c.ID})
	}
	for _, r := range replies {
		subjects = append(subjects, subject{models.SubjectReply, r.ID})
	}

	created := 0
	for _, sub := range subjects {
		for _, user := range users {
			// Roughly a third of user/subject pairs get a reaction.
			if rand.Intn(3) != 0 {
				continue
			}
			kind := models.ReactionLike
			if rand.Intn(4) == 0 {
				kind = models.ReactionDislike
			}
			reaction := models.Reaction{
				UserID:      user.ID,
				SubjectType: sub.kind,
				SubjectID:   sub.id,
				Kind:        kind,
			}
			if err := db.Create(&reaction).Error; err != nil {
				return created, err
			}
			created++
		}
	}
	return created, nil
}
