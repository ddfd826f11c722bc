package controller

import (
	"candideit/repository"
	"candideit/testutil"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidateCreate(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	stranger := testutil.CreateUser(t, db, "doe", "joe")
	election := testutil.CreateElection(t, db, user, "Election", "election")
	path := "/election/election/candidate/create"

	w := testutil.PerformRequest(r, "GET", path)
	assertRedirect(t, w, "/accounts/login?next=/election/election/candidate/create")

	w = testutil.PerformRequest(r, "GET", path, testutil.AuthCookie(t, stranger))
	assert.Equal(t, 404, w.Code)

	w = testutil.PerformRequest(r, "GET", path, testutil.AuthCookie(t, user))
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "CandidateForm", formOf(t, testutil.DecodeJSON(t, w), "form")["name"])

	w = testutil.PerformMultipart(t, r, path, map[string]string{"name": ""}, nil, testutil.AuthCookie(t, user))
	require.Equal(t, 200, w.Code)
	assert.Equal(t, []any{"Este campo es obligatorio."}, formErrors(t, testutil.DecodeJSON(t, w))["name"])

	w = testutil.PerformMultipart(t, r, path,
		map[string]string{"name": "Juan Pérez"},
		map[string]string{"photo": "photo.jpg"},
		testutil.AuthCookie(t, user))
	assertRedirect(t, w, "/election/election/candidate/juan-perez/data_update")

	candidate, err := repository.NewCandidateRepository(db).GetCandidateBySlug(election.ID, "juan-perez")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", candidate.Name)
	assert.NotEmpty(t, candidate.Photo)
}

func TestCandidateDataUpdate(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	election := testutil.CreateElection(t, db, user, "Election", "election")
	candidate := testutil.CreateCandidate(t, db, election, "Candidate")
	cookie := testutil.AuthCookie(t, user)
	path := "/election/election/candidate/candidate/data_update"

	personalData, err := repository.NewPersonalDataRepository(db).GetPersonalDataForElection(election.ID)
	require.NoError(t, err)
	categories, err := repository.NewCategoryRepository(db).GetCategoriesForElection(election.ID, "Questions.Answers")
	require.NoError(t, err)
	question := categories[0].Questions[0]

	w := testutil.PerformRequest(r, "GET", path, cookie)
	require.Equal(t, 200, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "elections/candidate_data_update.html", body["template"])
	assert.Equal(t, "CandidateDataForm", formOf(t, body, "form")["name"])

	w = testutil.PerformRequest(r, "GET", "/election/election/candidate/nobody/data_update", cookie)
	assert.Equal(t, 404, w.Code)

	w = testutil.PerformForm(r, "POST", path, url.Values{
		fmt.Sprintf("personal_data_%d", personalData[0].ID): {"40"},
		fmt.Sprintf("question_%d", question.ID):            {fmt.Sprint(question.Answers[0].ID)},
	}, cookie)
	assertRedirect(t, w, path)

	saved, err := repository.NewCandidateRepository(db).GetCandidateBySlug(election.ID, candidate.Slug, "PersonalDataValues", "Answers")
	require.NoError(t, err)
	require.Len(t, saved.PersonalDataValues, 1)
	assert.Equal(t, "40", saved.PersonalDataValues[0].Value)
	require.Len(t, saved.Answers, 1)
	assert.Equal(t, question.Answers[0].ID, saved.Answers[0].AnswerID)

	w = testutil.PerformRequest(r, "GET", path, cookie)
	require.Equal(t, 200, w.Code)
	values := formOf(t, testutil.DecodeJSON(t, w), "form")["values"].(map[string]any)
	assert.Equal(t, "40", values[fmt.Sprintf("personal_data_%d", personalData[0].ID)])

	key := fmt.Sprintf("question_%d", question.ID)
	w = testutil.PerformForm(r, "POST", path, url.Values{key: {"99999"}}, cookie)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, []any{"Escoge una opción válida."}, formErrors(t, testutil.DecodeJSON(t, w))[key])
}

func TestCandidateCreateWithUnsluggableName(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	election := testutil.CreateElection(t, db, user, "Election", "election")

	for _, name := range []string{"東京", "¡¿!"} {
		w := testutil.PerformMultipart(t, r, "/election/election/candidate/create",
			map[string]string{"name": name}, nil, testutil.AuthCookie(t, user))
		require.Equal(t, 200, w.Code, name)
		assert.Equal(t, []any{"El nombre debe contener al menos una letra o número."},
			formErrors(t, testutil.DecodeJSON(t, w))["name"], name)
	}

	var count int64
	require.NoError(t, db.Model(&repository.Candidate{}).Where("election_id = ?", election.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCandidateCreateRefreshesProfiles(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	testutil.CreateElection(t, db, user, "Election", "election")

	w := testutil.PerformRequest(r, "GET", "/joe/election/profiles")
	require.Equal(t, 200, w.Code)
	assert.Empty(t, testutil.DecodeJSON(t, w)["candidates"])

	w = testutil.PerformMultipart(t, r, "/election/election/candidate/create",
		map[string]string{"name": "Juan Pérez"}, nil, testutil.AuthCookie(t, user))
	assertRedirect(t, w, "/election/election/candidate/juan-perez/data_update")

	w = testutil.PerformRequest(r, "GET", "/joe/election/profiles")
	require.Equal(t, 200, w.Code)
	assert.Len(t, testutil.DecodeJSON(t, w)["candidates"], 1)
}
