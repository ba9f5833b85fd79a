package chapter

import "github.com/google/uuid"

type ChapterPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SubjectID   string `json:"subject_id"`
}

type ChapterResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	SubjectID   uuid.UUID `json:"subject_id"`
}

// SubjectWithChaptersDTO is the chapter listing shown when a user opens a
// subject.
type SubjectWithChaptersDTO struct {
	ID          uuid.UUID          `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Chapters    []*ChapterResponse `json:"chapters"`
}

func toResponse(c *Chapter) *ChapterResponse {
	return &ChapterResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		SubjectID:   c.SubjectID,
	}
}
