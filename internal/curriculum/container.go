package curriculum

import "gorm.io/gorm"

type CurriculumContainer struct {
	Handler *Handler
	Service CurriculumService
	Repo    CurriculumRepository
}

func NewCurriculumContainer(db *gorm.DB) *CurriculumContainer {
	repo := NewRepository(db)
	service := NewService(db, repo)
	handler := NewHandler(service)

	return &CurriculumContainer{
		Handler: handler,
		Service: service,
		Repo:    repo,
	}
}
