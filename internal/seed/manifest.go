package seed

import (
	"fmt"
	"os"

	"sensei/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

// Manifest describes a deterministic dataset to seed, usually checked into
// the repo for demos and reproducible local environments.
type Manifest struct {
	Users []ManifestUser `yaml:"users"`
	Posts []ManifestPost `yaml:"posts"`
}

type ManifestUser struct {
	Username    string `yaml:"username"`
	DisplayName string `yaml:"display_name"`
	Email       string `yaml:"email"`
	Role        string `yaml:"role"`
}

type ManifestPost struct {
	Author   string            `yaml:"author"`
	Title    string            `yaml:"title"`
	Content  string            `yaml:"content"`
	Category string            `yaml:"category"`
	Comments []ManifestComment `yaml:"comments"`
}

type ManifestComment struct {
	Author  string          `yaml:"author"`
	Content string          `yaml:"content"`
	Replies []ManifestReply `yaml:"replies"`
}

type ManifestReply struct {
	Author  string `yaml:"author"`
	Content string `yaml:"content"`
}

// LoadManifest reads and parses a YAML seed manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to parse manifest: %w", err)
	}
	return &m, nil
}

// Apply creates the manifest's users and discussion tree. Post authors are
// referenced by username and must appear in the users section.
func (m *Manifest) Apply(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return err
	}

	usersByName := make(map[string]*models.User, len(m.Users))
	for _, mu := range m.Users {
		role := mu.Role
		if role == "" {
			role = models.RoleStudent
		}
		displayName := mu.DisplayName
		if displayName == "" {
			displayName = mu.Username
		}
		user := &models.User{
			Username:    mu.Username,
			DisplayName: displayName,
			Email:       mu.Email,
			Password:    string(hash),
			Role:        role,
		}
		if err := db.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create user %q: %w", mu.Username, err)
		}
		usersByName[mu.Username] = user
	}

	lookup := func(username string) (*models.User, error) {
		user, ok := usersByName[username]
		if !ok {
			return nil, fmt.Errorf("manifest references unknown user %q", username)
		}
		return user, nil
	}

	for _, mp := range m.Posts {
		author, err := lookup(mp.Author)
		if err != nil {
			return err
		}
		if !models.ValidCategory(mp.Category) {
			return fmt.Errorf("post %q has invalid category %q", mp.Title, mp.Category)
		}

		post := &models.Post{
			Title:    mp.Title,
			Content:  mp.Content,
			Category: mp.Category,
			UserID:   author.ID,
		}
		if err := db.Create(post).Error; err != nil {
			return fmt.Errorf("failed to create post %q: %w", mp.Title, err)
		}

		for _, mc := range mp.Comments {
			commenter, err := lookup(mc.Author)
			if err != nil {
				return err
			}
			comment := &models.Comment{
				Content: mc.Content,
				PostID:  post.ID,
				UserID:  commenter.ID,
			}
			if err := db.Create(comment).Error; err != nil {
				return fmt.Errorf("failed to create comment on %q: %w", mp.Title, err)
			}

			for _, mr := range mc.Replies {
				replier, err := lookup(mr.Author)
				if err != nil {
					return err
				}
				reply := &models.Reply{
					Content:   mr.Content,
					CommentID: comment.ID,
					UserID:    replier.ID,
				}
				if err := db.Create(reply).Error; err != nil {
					return fmt.Errorf("failed to create reply on %q: %w", mp.Title, err)
				}
			}
		}
	}

	return nil
}
