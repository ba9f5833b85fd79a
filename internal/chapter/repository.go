package chapter

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChapterRepository interface {
	Create(c *Chapter) error
	FindByID(id uuid.UUID) (*Chapter, error)
	FindBySubject(subjectID uuid.UUID) ([]*Chapter, error)
	FindAll() ([]*Chapter, error)
	SearchByName(term string) ([]*Chapter, error)
	Update(c *Chapter) error
	Delete(id uuid.UUID) error
}

type chapterRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) Create(c *Chapter) error {
	return r.db.Create(c).Error
}

func (r *chapterRepository) FindByID(id uuid.UUID) (*Chapter, error) {
	var c Chapter
	if err := r.db.Preload("Subject").First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *chapterRepository) FindBySubject(subjectID uuid.UUID) ([]*Chapter, error) {
	var chapters []*Chapter
	if err := r.db.
		Where("subject_id = ?", subjectID).
		Order("name ASC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) FindAll() ([]*Chapter, error) {
	var chapters []*Chapter
	if err := r.db.Preload("Subject").Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) SearchByName(term string) ([]*Chapter, error) {
	var chapters []*Chapter
	if err := r.db.
		Preload("Subject").
		Where("name LIKE ?", "%"+term+"%").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (r *chapterRepository) Update(c *Chapter) error {
	return r.db.Save(c).Error
}

func (r *chapterRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&Chapter{}, "id = ?", id).Error
}
