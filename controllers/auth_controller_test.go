package controllers_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleanblog/cleanblog/models"
	"github.com/cleanblog/cleanblog/utils"
)

func TestRegister_CreatesUserAndLogsIn(t *testing.T) {
	db, r := setupApp(t)

	w := postForm(r, "/register", url.Values{
		"email":    {"ada@example.com"},
		"password": {"hunter2"},
		"name":     {"Ada"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotNil(t, responseCookie(w, utils.SessionCookieName))

	user, err := models.UserByEmail(db, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.NotEqual(t, "hunter2", user.PasswordHash)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "hunter2"))
}

func TestRegister_DuplicateEmailRedirectsToLogin(t *testing.T) {
	db, r := setupApp(t)
	createUser(t, db, "ada@example.com", "Ada", "hunter2")

	w := postForm(r, "/register", url.Values{
		"email":    {"ada@example.com"},
		"password": {"другой"},
		"name":     {"Imposter"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.Nil(t, responseCookie(w, utils.SessionCookieName))

	// Following the redirect surfaces the notice exactly once.
	flash := responseCookie(w, utils.FlashCookieName)
	require.NotNil(t, flash)
	w = get(r, "/login", flash)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "You have already signed up with that email. Please log in instead.")
	cleared := responseCookie(w, utils.FlashCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// The first account is unaffected and no second user was created.
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	user, err := models.UserByEmail(db, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", user.Name)
	assert.True(t, utils.CheckPassword(user.PasswordHash, "hunter2"))
}

func TestRegister_ValidationErrorsReRender(t *testing.T) {
	db, r := setupApp(t)

	w := postForm(r, "/register", url.Values{
		"email": {"not-an-email"},
		"name":  {"Ada"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email address.")
	assert.Contains(t, w.Body.String(), "This field is required.")

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLogin_WrongPasswordNeverEstablishesSession(t *testing.T) {
	db, r := setupApp(t)
	createUser(t, db, "ada@example.com", "Ada", "hunter2")

	w := postForm(r, "/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials. Try again.")
	assert.Nil(t, responseCookie(w, utils.SessionCookieName))
}

func TestLogin_UnknownUser(t *testing.T) {
	_, r := setupApp(t)

	w := postForm(r, "/login", url.Values{
		"email":    {"ghost@example.com"},
		"password": {"whatever"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "User does not exist. Please try again.")
	assert.Nil(t, responseCookie(w, utils.SessionCookieName))
}

func TestLogin_Success(t *testing.T) {
	db, r := setupApp(t)
	createUser(t, db, "ada@example.com", "Ada", "hunter2")

	w := postForm(r, "/login", url.Values{
		"email":    {"ada@example.com"},
		"password": {"hunter2"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.NotNil(t, responseCookie(w, utils.SessionCookieName))
}

func TestLogout_RevokesSession(t *testing.T) {
	db, r := setupApp(t)
	admin := createUser(t, db, "admin@example.com", "Admin", "hunter2")
	cookie := sessionCookie(t, admin)

	// The session works before logout.
	w := get(r, "/new-post", cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
	cleared := responseCookie(w, utils.SessionCookieName)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	// Replaying the old cookie after logout must not authenticate.
	w = get(r, "/new-post", cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
