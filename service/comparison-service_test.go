package service

import (
	"candideit/app_error"
	"candideit/filestorage"
	"candideit/repository"
	"candideit/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type comparisonFixture struct {
	db       *gorm.DB
	service  *ComparisonService
	election *repository.Election
	first    *repository.Candidate
	second   *repository.Candidate
}

func newComparisonFixture(t *testing.T) *comparisonFixture {
	db := testutil.NewTestDB(t)
	owner := testutil.CreateUser(t, db, "foobar", "foobar")
	election := testutil.CreateElection(t, db, owner, "elec foo", "elec-foo")
	return &comparisonFixture{
		db:       db,
		service:  NewComparisonService(db, filestorage.NewLocalStorage(t.TempDir(), "/media")),
		election: election,
		first:    testutil.CreateCandidate(t, db, election, "bar baz"),
		second:   testutil.CreateCandidate(t, db, election, "sec baz"),
	}
}

func TestProfileOmitsUnsetPersonalData(t *testing.T) {
	f := newComparisonFixture(t)
	personalData, err := repository.NewPersonalDataRepository(f.db).Create(&repository.PersonalData{ElectionID: f.election.ID, Label: "edad"})
	require.NoError(t, err)
	require.NoError(t, repository.NewPersonalDataRepository(f.db).SetValue(f.first.ID, personalData.ID, "miles de años de edad"))

	profile, err := f.service.Profile(f.election, f.first.Slug)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"edad": "miles de años de edad"}, profile.PersonalData)
	assert.Empty(t, profile.Photo)

	profile, err = f.service.Profile(f.election, f.second.Slug)
	require.NoError(t, err)
	assert.Empty(t, profile.PersonalData)
}

func TestCompareSameCandidateIsNotFound(t *testing.T) {
	f := newComparisonFixture(t)

	_, err := f.service.CompareTwo(f.election, f.first.Slug, f.first.Slug, "")
	assert.ErrorIs(t, err, app_error.ErrNotFound)
	_, err = f.service.CompareTwo(f.election, f.first.Slug, f.first.Slug, "educacion")
	assert.ErrorIs(t, err, app_error.ErrNotFound)
}

func TestCompareUnknownCandidateOrCategory(t *testing.T) {
	f := newComparisonFixture(t)

	_, err := f.service.CompareOne(f.election, "nobody")
	assert.ErrorIs(t, err, app_error.ErrNotFound)
	_, err = f.service.CompareTwo(f.election, f.first.Slug, "nobody", "")
	assert.ErrorIs(t, err, app_error.ErrNotFound)
	_, err = f.service.CompareTwo(f.election, f.first.Slug, f.second.Slug, "salud")
	assert.ErrorIs(t, err, app_error.ErrNotFound)
}

func TestCompareTwoWithCategory(t *testing.T) {
	f := newComparisonFixture(t)
	categories, err := repository.NewCategoryRepository(f.db).GetCategoriesForElection(f.election.ID, "Questions.Answers")
	require.NoError(t, err)
	question := categories[0].Questions[0]
	require.NoError(t, repository.NewCandidateRepository(f.db).SaveCandidateData(f.first.ID, &repository.CandidateData{
		Answers: map[uint]uint{question.ID: question.Answers[0].ID},
	}))

	comparison, err := f.service.CompareTwo(f.election, f.first.Slug, f.second.Slug, "educacion")
	require.NoError(t, err)
	require.Len(t, comparison.Candidates, 2)
	assert.Equal(t, "bar-baz", comparison.Candidates[0].Slug)
	assert.Equal(t, "sec-baz", comparison.Candidates[1].Slug)
	assert.Equal(t, "Sí", comparison.Candidates[0].Answers[question.ID])

	require.NotNil(t, comparison.Category)
	require.Len(t, comparison.Category.Questions, 2)
	compared := comparison.Category.Questions[0]
	assert.Equal(t, question.ID, compared.ID)
	require.Len(t, compared.Chosen, 2)
	require.NotNil(t, compared.Chosen[0])
	assert.Equal(t, "Sí", compared.Chosen[0].Caption)
	assert.Nil(t, compared.Chosen[1])
}

func TestCompareTwoWithoutCategory(t *testing.T) {
	f := newComparisonFixture(t)

	comparison, err := f.service.CompareTwo(f.election, f.first.Slug, f.second.Slug, "")
	require.NoError(t, err)
	assert.Len(t, comparison.Candidates, 2)
	assert.Nil(t, comparison.Category)
}
