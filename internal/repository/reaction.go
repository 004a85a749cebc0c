package repository

import (
	"context"
	"errors"

	"sensei/internal/models"

	"gorm.io/gorm"
)

// ReactionCounts holds the like and dislike tallies for one subject.
type ReactionCounts struct {
	Likes    int
	Dislikes int
}

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	Find(ctx context.Context, userID uint, subjectType string, subjectID uint) (*models.Reaction, error)
	Create(ctx context.Context, reaction *models.Reaction) error
	Save(ctx context.Context, reaction *models.Reaction) error
	Delete(ctx context.Context, id uint) error
	CountsBySubject(ctx context.Context, subjectType string, subjectIDs []uint) (map[uint]ReactionCounts, error)
	KindsForUser(ctx context.Context, userID uint, subjectType string, subjectIDs []uint) (map[uint]string, error)
}

type reactionRepository struct {
	db *gorm.DB
}

// NewReactionRepository creates a new reaction repository
func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

// Find returns (nil, nil) when the user has no reaction on the subject.
func (r *reactionRepository) Find(ctx context.Context, userID uint, subjectType string, subjectID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND subject_type = ? AND subject_id = ?", userID, subjectType, subjectID).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Create(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Create(reaction).Error
}

func (r *reactionRepository) Save(ctx context.Context, reaction *models.Reaction) error {
	return r.db.WithContext(ctx).Save(reaction).Error
}

func (r *reactionRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Reaction{}, id).Error
}

// CountsBySubject tallies likes and dislikes per subject in a single GROUP BY
// query. Subjects with no reactions are absent from the result map.
func (r *reactionRepository) CountsBySubject(ctx context.Context, subjectType string, subjectIDs []uint) (map[uint]ReactionCounts, error) {
	counts := make(map[uint]ReactionCounts, len(subjectIDs))
	if len(subjectIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		SubjectID uint
		Kind      string
		Total     int
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("subject_id, kind, COUNT(*) as total").
		Where("subject_type = ? AND subject_id IN ?", subjectType, subjectIDs).
		Group("subject_id, kind").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		c := counts[row.SubjectID]
		switch row.Kind {
		case models.ReactionLike:
			c.Likes = row.Total
		case models.ReactionDislike:
			c.Dislikes = row.Total
		}
		counts[row.SubjectID] = c
	}
	return counts, nil
}

// KindsForUser returns the user's reaction kind per subject. Subjects the user
// has not reacted to are absent from the result map.
func (r *reactionRepository) KindsForUser(ctx context.Context, userID uint, subjectType string, subjectIDs []uint) (map[uint]string, error) {
	kinds := make(map[uint]string, len(subjectIDs))
	if userID == 0 || len(subjectIDs) == 0 {
		return kinds, nil
	}

	var rows []struct {
		SubjectID uint
		Kind      string
	}
	err := r.db.WithContext(ctx).
		Model(&models.Reaction{}).
		Select("subject_id, kind").
		Where("user_id = ? AND subject_type = ? AND subject_id IN ?", userID, subjectType, subjectIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		kinds[row.SubjectID] = row.Kind
	}
	return kinds, nil
}
