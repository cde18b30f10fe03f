package session

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromCtxWithoutMiddlewareYieldsEmptySession(t *testing.T) {
	sess := FromCtx(httptest.NewRequest("GET", "/", nil))

	require.NotNil(t, sess)
	assert.NotEmpty(t, sess.ID())
	_, ok := sess.Get("anything")
	assert.False(t, ok)
}

func TestSetGetDelete(t *testing.T) {
	sess := FromCtx(httptest.NewRequest("GET", "/", nil))

	sess.Set("checkoutCart", `{"lines":[]}`)

	v, ok := sess.GetString("checkoutCart")
	require.True(t, ok)
	assert.Equal(t, `{"lines":[]}`, v)

	sess.Delete("checkoutCart")
	_, ok = sess.Get("checkoutCart")
	assert.False(t, ok)
}

func TestGetStringRejectsNonStrings(t *testing.T) {
	sess := FromCtx(httptest.NewRequest("GET", "/", nil))
	sess.Set("count", 3)

	_, ok := sess.GetString("count")
	assert.False(t, ok)
}

func TestInvalidateDropsEverything(t *testing.T) {
	sess := FromCtx(httptest.NewRequest("GET", "/", nil))
	sess.Set("accessToken", "tok")
	sess.Set("checkoutCart", "{}")

	sess.Invalidate()

	_, ok := sess.Get("accessToken")
	assert.False(t, ok)
	_, ok = sess.Get("checkoutCart")
	assert.False(t, ok)
}

func TestSaveWritesTheSessionCookie(t *testing.T) {
	sess := FromCtx(httptest.NewRequest("GET", "/", nil))
	sess.Set("accessToken", "tok")

	w := httptest.NewRecorder()
	require.NoError(t, sess.Save(w))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultOptions().CookieName, cookies[0].Name)
	assert.Equal(t, sess.ID(), cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
}
