package repository_test

import (
	"candideit/app_error"
	"candideit/repository"
	"candideit/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCreateSeedsDefaults(t *testing.T) {
	db := testutil.NewTestDB(t)
	user := testutil.CreateUser(t, db, "joe", "doe")

	election, err := repository.NewElectionRepository(db).Create(&repository.Election{
		Name:        "Foo",
		Slug:        "foo",
		OwnerID:     user.ID,
		Description: "Lorem ipsum",
	})
	require.NoError(t, err)

	personalData, err := repository.NewPersonalDataRepository(db).GetPersonalDataForElection(election.ID)
	require.NoError(t, err)
	labels := make([]string, 0)
	for _, pd := range personalData {
		labels = append(labels, pd.Label)
	}
	assert.Equal(t, []string{"Edad", "Estado civil", "Profesión", "Género"}, labels)

	backgroundCategories, err := repository.NewBackgroundRepository(db).GetCategoriesForElection(election.ID)
	require.NoError(t, err)
	require.Len(t, backgroundCategories, 2)
	assert.Equal(t, "Educación", backgroundCategories[0].Name)
	assert.Len(t, backgroundCategories[0].Backgrounds, 3)
	assert.Equal(t, "Educación primaria", backgroundCategories[0].Backgrounds[0].Name)
	assert.Equal(t, "Antecedentes laborales", backgroundCategories[1].Name)
	require.Len(t, backgroundCategories[1].Backgrounds, 1)
	assert.Equal(t, "Último trabajo", backgroundCategories[1].Backgrounds[0].Name)

	categories, err := repository.NewCategoryRepository(db).GetCategoriesForElection(election.ID, "Questions.Answers")
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, "Educación", categories[0].Name)
	assert.Equal(t, "educacion", categories[0].Slug)
	require.Len(t, categories[0].Questions, 2)
	assert.Equal(t, "¿Crees que Chile debe tener una educación gratuita?", categories[0].Questions[0].Question)
	assert.Equal(t, "¿Estas de acuerdo con la desmunicipalización?", categories[0].Questions[1].Question)
	for _, question := range categories[0].Questions {
		require.Len(t, question.Answers, 2)
		assert.Equal(t, "Sí", question.Answers[0].Caption)
		assert.Equal(t, "No", question.Answers[1].Caption)
	}
}

func TestCreateRejectsDuplicateSlugForOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewElectionRepository(db)
	user := testutil.CreateUser(t, db, "joe", "doe")
	testutil.CreateElection(t, db, user, "BarBaz1", "barbaz")

	_, err := repo.Create(&repository.Election{Name: "BarBaz", Slug: "barbaz", OwnerID: user.ID})
	assert.ErrorIs(t, err, app_error.ErrDuplicateSlugForOwner)

	var count int64
	require.NoError(t, db.Model(&repository.PersonalData{}).Count(&count).Error)
	assert.Equal(t, int64(4), count, "a rejected election must not seed anything")
}

func TestSameSlugForDifferentOwners(t *testing.T) {
	db := testutil.NewTestDB(t)
	joe := testutil.CreateUser(t, db, "joe", "doe")
	doe := testutil.CreateUser(t, db, "doe", "joe")
	testutil.CreateElection(t, db, joe, "Foo", "foo")

	_, err := repository.NewElectionRepository(db).Create(&repository.Election{Name: "Foo", Slug: "foo", OwnerID: doe.ID})
	assert.NoError(t, err)
}

func TestOwnershipScopedLookup(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewElectionRepository(db)
	joe := testutil.CreateUser(t, db, "joe", "doe")
	doe := testutil.CreateUser(t, db, "doe", "joe")
	election := testutil.CreateElection(t, db, joe, "Foo", "foo")

	found, err := repo.GetElectionForOwner(joe.ID, "foo")
	require.NoError(t, err)
	assert.Equal(t, election.ID, found.ID)

	_, err = repo.GetElectionForOwner(doe.ID, "foo")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err = repo.GetElectionByUsernameAndSlug("joe", "foo", "Owner")
	require.NoError(t, err)
	assert.Equal(t, "joe", found.Owner.Username)

	_, err = repo.GetElectionByUsernameAndSlug("doe", "foo")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateKeepsSlugAndOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewElectionRepository(db)
	joe := testutil.CreateUser(t, db, "joe", "doe")
	election := testutil.CreateElection(t, db, joe, "elec foo", "eleccion-la-florida")

	election.Name = "BarBaz"
	election.Slug = "changed"
	election.Description = "esta es una descripcion"
	_, err := repo.Update(election)
	require.NoError(t, err)

	found, err := repo.GetElectionForOwner(joe.ID, "eleccion-la-florida")
	require.NoError(t, err)
	assert.Equal(t, "BarBaz", found.Name)
	assert.Equal(t, "esta es una descripcion", found.Description)
}

func TestGetLatestElectionForOwner(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewElectionRepository(db)
	joe := testutil.CreateUser(t, db, "joe", "doe")

	_, err := repo.GetLatestElectionForOwner(joe.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	testutil.CreateElection(t, db, joe, "Election", "election")
	testutil.CreateElection(t, db, joe, "Another Election", "another-election")
	latest, err := repo.GetLatestElectionForOwner(joe.ID)
	require.NoError(t, err)
	assert.Equal(t, "another-election", latest.Slug)
}
