package repository

import "gorm.io/gorm"

// Models lists every table in dependency order.
var Models = []any{
	&User{},
	&Election{},
	&PersonalData{},
	&BackgroundCategory{},
	&Background{},
	&Category{},
	&Question{},
	&Answer{},
	&Candidate{},
	&PersonalDataCandidate{},
	&BackgroundCandidate{},
	&CandidateAnswer{},
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
