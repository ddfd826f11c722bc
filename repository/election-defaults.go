package repository

import (
	"candideit/utils"
	"fmt"

	"gorm.io/gorm"
)

type defaultBackgroundCategory struct {
	Name        string
	Backgrounds []string
}

type defaultQuestion struct {
	Question string
	Answers  []string
}

type defaultCategory struct {
	Name      string
	Questions []defaultQuestion
}

var defaultPersonalData = []string{
	"Edad",
	"Estado civil",
	"Profesión",
	"Género",
}

var defaultBackgroundCategories = []defaultBackgroundCategory{
	{
		Name:        "Educación",
		Backgrounds: []string{"Educación primaria", "Educación secundaria", "Educación superior"},
	},
	{
		Name:        "Antecedentes laborales",
		Backgrounds: []string{"Último trabajo"},
	},
}

var defaultCategories = []defaultCategory{
	{
		Name: "Educación",
		Questions: []defaultQuestion{
			{Question: "¿Crees que Chile debe tener una educación gratuita?", Answers: []string{"Sí", "No"}},
			{Question: "¿Estas de acuerdo con la desmunicipalización?", Answers: []string{"Sí", "No"}},
		},
	},
}

// seedElectionDefaults must run inside the transaction that inserted election.
// Rows are created one at a time so ids follow the declared order.
func seedElectionDefaults(tx *gorm.DB, election *Election) error {
	for _, label := range defaultPersonalData {
		if err := tx.Create(&PersonalData{ElectionID: election.ID, Label: label}).Error; err != nil {
			return fmt.Errorf("failed to seed personal data %q: %w", label, err)
		}
	}
	for _, defaults := range defaultBackgroundCategories {
		category := &BackgroundCategory{ElectionID: election.ID, Name: defaults.Name}
		if err := tx.Omit("Backgrounds").Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed background category %q: %w", defaults.Name, err)
		}
		for _, name := range defaults.Backgrounds {
			if err := tx.Create(&Background{BackgroundCategoryID: category.ID, Name: name}).Error; err != nil {
				return fmt.Errorf("failed to seed background %q: %w", name, err)
			}
		}
	}
	for _, defaults := range defaultCategories {
		category := &Category{ElectionID: election.ID, Name: defaults.Name, Slug: utils.Slugify(defaults.Name)}
		if err := tx.Omit("Questions").Create(category).Error; err != nil {
			return fmt.Errorf("failed to seed category %q: %w", defaults.Name, err)
		}
		for _, q := range defaults.Questions {
			question := &Question{CategoryID: category.ID, Question: q.Question}
			if err := tx.Omit("Answers").Create(question).Error; err != nil {
				return fmt.Errorf("failed to seed question %q: %w", q.Question, err)
			}
			for _, caption := range q.Answers {
				if err := tx.Create(&Answer{QuestionID: question.ID, Caption: caption}).Error; err != nil {
					return fmt.Errorf("failed to seed answer %q: %w", caption, err)
				}
			}
		}
	}
	return nil
}
