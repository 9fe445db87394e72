package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/saulo-duarte/mentora-lambda/internal/config"
	"github.com/saulo-duarte/mentora-lambda/internal/curriculum"
	"github.com/saulo-duarte/mentora-lambda/internal/quiz"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type seedFile struct {
	Curricula []seedCurriculum `yaml:"curricula"`
}

type seedCurriculum struct {
	Name          string     `yaml:"name"`
	Description   string     `yaml:"description"`
	Objective     string     `yaml:"objective"`
	Prerequisites string     `yaml:"prerequisites"`
	Difficulty    string     `yaml:"difficulty"`
	Syllabus      []seedUnit `yaml:"syllabus"`
}

type seedUnit struct {
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Topics      []seedTopic `yaml:"topics"`
}

type seedTopic struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Resources   []seedResource `yaml:"resources"`
	Questions   []seedQuestion `yaml:"questions"`
}

type seedResource struct {
	Title string `yaml:"title"`
	URL   string `yaml:"url"`
	Kind  string `yaml:"kind"`
}

type seedQuestion struct {
	Question string       `yaml:"question"`
	Options  []seedOption `yaml:"options"`
}

type seedOption struct {
	Option  string `yaml:"option"`
	Reason  string `yaml:"reason"`
	Correct bool   `yaml:"correct"`
}

func main() {
	path := flag.String("file", "seed.yaml", "path to the seed file")
	flag.Parse()

	config.Init()

	dsn := os.Getenv("DATABASE_DSN")
	if err := config.Connect(context.Background(), dsn); err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	if err := config.DB.AutoMigrate(
		&curriculum.Curriculum{},
		&curriculum.SyllabusUnit{},
		&curriculum.Topic{},
		&curriculum.Resource{},
		&quiz.Question{},
		&quiz.Option{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatalf("failed to read seed file: %v", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		log.Fatalf("failed to parse seed file: %v", err)
	}

	for _, sc := range seed.Curricula {
		if err := seedOne(config.DB, sc); err != nil {
			log.Fatalf("failed to seed curriculum %q: %v", sc.Name, err)
		}
		log.Printf("seeded curriculum %q with %d units", sc.Name, len(sc.Syllabus))
	}
}

func seedOne(db *gorm.DB, sc seedCurriculum) error {
	difficulty := curriculum.Difficulty(sc.Difficulty)
	if !difficulty.IsValid() {
		difficulty = curriculum.BEGINNER
	}

	return db.Transaction(func(tx *gorm.DB) error {
		c := &curriculum.Curriculum{
			Name:          sc.Name,
			Slug:          curriculum.Slugify(sc.Name),
			Description:   sc.Description,
			Objective:     sc.Objective,
			Prerequisites: sc.Prerequisites,
			Difficulty:    difficulty,
		}

		for i, su := range sc.Syllabus {
			unit := curriculum.SyllabusUnit{
				OrderIndex:  i + 1,
				Title:       su.Title,
				Slug:        curriculum.Slugify(c.Name + " " + su.Title),
				Description: su.Description,
			}
			for j, st := range su.Topics {
				topic := curriculum.Topic{
					OrderIndex:  j + 1,
					Title:       st.Title,
					Slug:        curriculum.Slugify(unit.Slug + " " + st.Title),
					Description: st.Description,
				}
				for _, sr := range st.Resources {
					topic.Resources = append(topic.Resources, curriculum.Resource{
						Title: sr.Title,
						URL:   sr.URL,
						Kind:  sr.Kind,
					})
				}
				unit.Topics = append(unit.Topics, topic)
			}
			c.Syllabus = append(c.Syllabus, unit)
		}

		if err := tx.Create(c).Error; err != nil {
			return err
		}

		// Questions reference topic ids, so they go in after the cascade
		// above has assigned them.
		for ui, su := range sc.Syllabus {
			for ti, st := range su.Topics {
				topicID := c.Syllabus[ui].Topics[ti].ID
				for _, sq := range st.Questions {
					q := &quiz.Question{
						TopicID:  topicID,
						Question: sq.Question,
					}
					for _, so := range sq.Options {
						q.Options = append(q.Options, quiz.Option{
							Option:    so.Option,
							Reason:    so.Reason,
							IsCorrect: so.Correct,
						})
					}
					if err := tx.Create(q).Error; err != nil {
						return err
					}
				}
			}
		}

		return nil
	})
}
