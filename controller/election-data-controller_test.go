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

func TestUpdateDataPage(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	stranger := testutil.CreateUser(t, db, "doe", "joe")
	testutil.CreateElection(t, db, user, "Election", "election")

	w := testutil.PerformRequest(r, "GET", "/election/election/update_data")
	assertRedirect(t, w, "/accounts/login?next=/election/election/update_data")

	w = testutil.PerformRequest(r, "GET", "/election/election/update_data", testutil.AuthCookie(t, stranger))
	assert.Equal(t, 404, w.Code)

	w = testutil.PerformRequest(r, "GET", "/election/election/update_data", testutil.AuthCookie(t, user))
	require.Equal(t, 200, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "elections/election_update_data.html", body["template"])
	for key, name := range map[string]string{
		"personaldata_form":       "PersonalDataForm",
		"backgroundcategory_form": "BackgroundCategoryForm",
		"background_form":         "BackgroundForm",
		"question_form":           "QuestionForm",
		"category_form":           "CategoryForm",
		"answer_form":             "AnswerForm",
	} {
		assert.Equal(t, name, formOf(t, body, key)["name"], key)
	}
	assert.Len(t, body["personal_data"], 4)
	assert.Len(t, body["background_categories"], 2)
	assert.Len(t, body["categories"], 1)
}

func TestPrePersonalData(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	testutil.CreateElection(t, db, user, "Election", "election")

	w := testutil.PerformRequest(r, "GET", "/election/election/pre_personaldata", testutil.AuthCookie(t, user))
	require.Equal(t, 200, w.Code)
	body := testutil.DecodeJSON(t, w)
	assert.Equal(t, "elections/pre_personaldata.html", body["template"])
	assert.Equal(t, "election", formOf(t, body, "election")["slug"])

	w = testutil.PerformRequest(r, "GET", "/election/missing/pre_personaldata", testutil.AuthCookie(t, user))
	assert.Equal(t, 404, w.Code)
}

func TestCreateBackgroundCategory(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	stranger := testutil.CreateUser(t, db, "doe", "joe")
	election := testutil.CreateElection(t, db, user, "Election", "election")
	path := "/election/election/background_category/create"
	values := url.Values{"name": {"Foo"}}

	w := testutil.PerformForm(r, "POST", path, values)
	assert.Equal(t, 302, w.Code)

	w = testutil.PerformForm(r, "POST", path, values, testutil.AuthCookie(t, stranger))
	assert.Equal(t, 404, w.Code)

	w = testutil.PerformRequest(r, "GET", path, testutil.AuthCookie(t, user))
	require.Equal(t, 200, w.Code)
	assert.Equal(t, "BackgroundCategoryForm", formOf(t, testutil.DecodeJSON(t, w), "form")["name"])

	w = testutil.PerformForm(r, "POST", path, values, testutil.AuthCookie(t, user))
	assertRedirect(t, w, path)

	var categories []*repository.BackgroundCategory
	require.NoError(t, db.Where("election_id = ? AND name = ?", election.ID, "Foo").Find(&categories).Error)
	assert.Len(t, categories, 1)
}

func TestCreateElectionDataValidation(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	testutil.CreateElection(t, db, user, "Election", "election")
	cookie := testutil.AuthCookie(t, user)

	w := testutil.PerformForm(r, "POST", "/election/election/personal_data/create", url.Values{"label": {""}}, cookie)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, []any{"Este campo es obligatorio."}, formErrors(t, testutil.DecodeJSON(t, w))["label"])

	w = testutil.PerformForm(r, "POST", "/election/election/background/create",
		url.Values{"category": {"9999"}, "name": {"Postgrado"}}, cookie)
	require.Equal(t, 200, w.Code)
	assert.Equal(t, []any{"Escoge una opción válida."}, formErrors(t, testutil.DecodeJSON(t, w))["category"])
}

func TestCreateQuestionAndAnswer(t *testing.T) {
	r, db := newTestRouter(t)
	user := testutil.CreateUser(t, db, "joe", "doe")
	election := testutil.CreateElection(t, db, user, "Election", "election")
	cookie := testutil.AuthCookie(t, user)

	w := testutil.PerformForm(r, "POST", "/election/election/category/create", url.Values{"name": {"Salud"}}, cookie)
	assertRedirect(t, w, "/election/election/category/create")

	category, err := repository.NewCategoryRepository(db).GetCategoryBySlug(election.ID, "salud")
	require.NoError(t, err)

	w = testutil.PerformForm(r, "POST", "/election/election/question/create",
		url.Values{"category": {fmt.Sprint(category.ID)}, "question": {"¿Apoyas el royalty?"}}, cookie)
	assertRedirect(t, w, "/election/election/question/create")

	category, err = repository.NewCategoryRepository(db).GetCategoryBySlug(election.ID, "salud", "Questions")
	require.NoError(t, err)
	require.Len(t, category.Questions, 1)

	w = testutil.PerformForm(r, "POST", "/election/election/answer/create",
		url.Values{"question": {fmt.Sprint(category.Questions[0].ID)}, "caption": {"Sí"}}, cookie)
	assertRedirect(t, w, "/election/election/answer/create")

	category, err = repository.NewCategoryRepository(db).GetCategoryBySlug(election.ID, "salud", "Questions.Answers")
	require.NoError(t, err)
	require.Len(t, category.Questions[0].Answers, 1)
	assert.Equal(t, "Sí", category.Questions[0].Answers[0].Caption)
}
