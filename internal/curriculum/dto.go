package curriculum

import "github.com/google/uuid"

type CreateCurriculumDTO struct {
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Objective     string     `json:"objective"`
	Prerequisites string     `json:"prerequisites"`
	Difficulty    Difficulty `json:"difficulty"`
}

type CreateUnitDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type CreateTopicDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

type CreateResourceDTO struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Kind  string `json:"kind"`
}

type CurriculumSummary struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Slug        string     `json:"slug"`
	Description string     `json:"description"`
	Difficulty  Difficulty `json:"difficulty"`
	Enrolled    int        `json:"enrolled"`
	Rating      float64    `json:"rating"`
	Weeks       int        `json:"weeks"`
}

func Summarize(c *Curriculum) *CurriculumSummary {
	return &CurriculumSummary{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Difficulty:  c.Difficulty,
		Enrolled:    c.Enrolled,
		Rating:      c.Rating,
		Weeks:       len(c.Syllabus),
	}
}
