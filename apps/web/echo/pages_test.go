package echoweb_test

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/apps/web/echo"
)

func TestSlide(t *testing.T) {
	tests := []struct {
		name     string
		n, count int
		want     int
	}{
		{"first", 0, 4, 0},
		{"past the end", 4, 4, 0},
		{"before the start", -1, 4, 3},
		{"far before the start", -9, 4, 3},
		{"no slides", 3, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, echoweb.Slide(tt.n, tt.count))
		})
	}
}

func TestPages_public(t *testing.T) {
	tests := []httpTest{
		{
			name: "home", path: "/", wantCode: http.StatusOK,
			wantBody: []string{"Featured Courses", `src="/assets/videos/1.mp4"`, `href="/signin"`},
		},
		{name: "home slide wraps", path: "/?slide=-1", wantCode: http.StatusOK, wantBody: []string{`class="active">`}},
		{name: "courses", path: "/courses", wantCode: http.StatusOK, wantBody: []string{"All Courses", "Complete Web Development Bootcamp 2024"}},
		{
			name: "courses by category", path: "/courses?category=" + url.QueryEscape("Web Development"), wantCode: http.StatusOK,
			wantBody: []string{`<option value="Web Development" selected>`},
		},
		{
			name: "courses without results", path: "/courses?search=zzzz", wantCode: http.StatusOK,
			wantBody: []string{"No courses found", `href="/courses"`},
		},
		{name: "course", path: "/courses/1", wantCode: http.StatusOK, wantBody: []string{"Enroll Now", "What you'll learn"}},
		{name: "webinars", path: "/webinars", wantCode: http.StatusOK, wantBody: []string{"Live Now", "Upcoming"}},
		{name: "sign in", path: "/signin", wantCode: http.StatusOK, wantBody: []string{"Demo: john.doe@example.com / password123"}},
		{name: "sign up", path: "/signup", wantCode: http.StatusOK, wantBody: []string{"Create Account"}},
		{
			name: "classroom", path: "/virtual-classroom", wantCode: http.StatusOK,
			wantBody: []string{"Participants (16)", "/sitting_girl/scene.gltf could not be loaded", "Unmute"},
		},
		{name: "classroom primitives", path: "/virtual-classroom?variant=primitives", wantCode: http.StatusOK, wantBody: []string{"15 seats"}},
		{name: "classroom unknown variant", path: "/virtual-classroom?variant=lol", wantCode: http.StatusBadRequest},
		{name: "classroom default topic", path: "/virtual-classroom", wantCode: http.StatusOK, wantBody: []string{"<span>Advanced Web Dev</span>"}},
		{
			name: "classroom for a course", path: "/virtual-classroom?course=1", wantCode: http.StatusOK,
			wantBody: []string{"<span>Complete Web Development Bootcamp 2024</span>", `href="/virtual-classroom?variant=primitives&amp;course=1"`},
		},
		{name: "classroom for an unknown course", path: "/virtual-classroom?course=999", wantCode: http.StatusNotFound},
	}
	runTests(t, newBrowser(), tests)
}

func TestPages_heroFallback(t *testing.T) {
	rec := newBrowser().get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hero-fallback")

	noVideos, err := newTestServer(fstest.MapFS{
		"classroom/scene.gltf": {Data: []byte(`{"asset":{"version":"2.0"}}`)},
	})
	require.NoError(t, err)

	rec = newBrowserOn(noVideos).get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.NotContains(t, body, "<video")
	assert.Contains(t, body, `<img class="hero-fallback" src="/assets/images/hero.jpg" alt="">`)
}

func TestPages_notFound(t *testing.T) {
	tests := []httpTest{
		{
			name: "unknown page", path: "/lol", wantCode: http.StatusNotFound,
			wantBody: []string{"Page Not Found", `<a class="button" href="/courses">Browse courses</a>`},
		},
		{name: "unknown course", path: "/courses/999", wantCode: http.StatusNotFound, wantBody: []string{"Course Not Found"}},
		{name: "unknown asset", path: "/assets/models/lol.gltf", wantCode: http.StatusNotFound},
		{name: "unknown api route", path: "/api/v1/lol", wantCode: http.StatusNotFound, wantData: []byte(`{"error":"Not Found"}`)},
	}
	runTests(t, newBrowser(), tests)
}

func TestPages_routeGuard(t *testing.T) {
	tests := []httpTest{
		{name: "dashboard", path: "/dashboard", wantCode: http.StatusSeeOther, wantLoc: "/signin"},
		{name: "certificate", path: "/dashboard/certificates/cert1", wantCode: http.StatusSeeOther, wantLoc: "/signin"},
		{name: "admin", path: "/admin", wantCode: http.StatusSeeOther, wantLoc: "/signin"},
		{
			name: "complete lesson", method: http.MethodPost, path: "/courses/1/lessons/l1/complete",
			wantCode: http.StatusSeeOther, wantLoc: "/signin",
		},
		{
			name: "api me", path: "/api/v1/me", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
		{
			name: "api admin", path: "/api/v1/admin/overview", wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, httpErr{Error: "user not authenticated"}),
		},
	}
	runTests(t, newBrowser(), tests)
}

func TestPages_auth(t *testing.T) {
	b := newBrowser()

	rec := b.post("/signin", url.Values{"email": {demoEmail}, "password": {"nope"}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password. Try: john.doe@example.com / password123")
	assert.Contains(t, rec.Body.String(), `value="john.doe@example.com"`)

	rec = b.post("/signin", url.Values{"email": {"  " + demoEmail + " "}, "password": {demoPassword}})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))

	rec = b.post("/signin", url.Values{"email": {demoEmail}, "password": {demoPassword}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = b.get("/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Welcome back, John Doe!")
	assert.Contains(t, body, "WD-2024-001234")
	assert.Contains(t, body, `<form method="post" action="/logout">`)

	rec = b.post("/logout", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	rec = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))
}

func TestPages_signUp(t *testing.T) {
	b := newBrowser()

	rec := b.post("/signup", url.Values{"name": {"Jane Roe"}, "email": {"jane@example.com"}, "password": {"whatever"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	rec = b.get("/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Welcome back, Jane Roe!")
	assert.Contains(t, rec.Body.String(), "You have not enrolled in any course yet.")
}

func TestPages_visitorCookie(t *testing.T) {
	b := signedIn(t)
	rec := b.get("/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	// a tampered cookie gets a fresh, anonymous visitor
	for name, c := range b.cookies {
		c.Value = strings.ToUpper(c.Value)
		b.cookies[name] = c
	}
	rec = b.get("/dashboard")
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.NotEmpty(t, rec.Result().Cookies())
}

func TestPages_theme(t *testing.T) {
	b := newBrowser()

	rec := b.get("/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="">`)

	b.referer = "http://example.com/courses?search=react"
	rec = b.post("/theme/toggle", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/courses?search=react", rec.Header().Get("Location"))

	b.referer = ""
	rec = b.get("/webinars")
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="dark">`)

	// another browser keeps its own theme
	rec = newBrowser().get("/webinars")
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="">`)

	rec = b.post("/theme/toggle", nil)
	assert.Equal(t, "/", rec.Header().Get("Location"))
	rec = b.get("/")
	assert.Contains(t, rec.Body.String(), `<html lang="en" class="">`)
}

func TestPages_redirectBackIgnoresOtherHosts(t *testing.T) {
	b := newBrowser()
	b.referer = "http://example.com//evil.com/path"
	rec := b.post("/theme/toggle", nil)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestPages_checkout(t *testing.T) {
	t.Run("anonymous", func(t *testing.T) {
		rec := newBrowser().post("/courses/4/enroll", nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/signin", rec.Header().Get("Location"))
	})

	t.Run("submit before enrolling", func(t *testing.T) {
		rec := signedIn(t).post("/courses/4/checkout", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("unknown course", func(t *testing.T) {
		rec := signedIn(t).post("/courses/999/enroll", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("pay", func(t *testing.T) {
		b := signedIn(t)

		rec := b.post("/courses/4/enroll", nil)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/courses/4", rec.Header().Get("Location"))

		rec = b.get("/courses/4")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Complete Payment")
		assert.Contains(t, rec.Body.String(), `name="cardNumber"`)

		rec = b.post("/courses/4/payment-method", url.Values{"method": {"bitcoin"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = b.post("/courses/4/payment-method", url.Values{"method": {"paypal"}})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		rec = b.get("/courses/4")
		assert.NotContains(t, rec.Body.String(), `name="cardNumber"`)

		rec = b.post("/courses/4/checkout", url.Values{})
		require.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

		rec = b.get("/courses/4")
		assert.Contains(t, rec.Body.String(), "Enroll Now")
	})

	t.Run("cancel", func(t *testing.T) {
		b := signedIn(t)
		require.Equal(t, http.StatusSeeOther, b.post("/courses/5/enroll", nil).Code)
		require.Equal(t, http.StatusSeeOther, b.post("/courses/5/cancel", nil).Code)

		rec := b.get("/courses/5")
		assert.Contains(t, rec.Body.String(), "Enroll Now")
		assert.Equal(t, http.StatusConflict, b.post("/courses/5/cancel", nil).Code)
	})
}

func TestPages_progress(t *testing.T) {
	b := signedIn(t)

	rec := b.get("/courses/2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Progress: 0%")

	b.referer = "http://localhost/courses/2"
	rec = b.post("/courses/2/lessons/l4/complete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/courses/2", rec.Header().Get("Location"))

	rec = b.get("/courses/2")
	assert.Contains(t, rec.Body.String(), "Completed")
	assert.NotContains(t, rec.Body.String(), "Progress: 0%")

	rec = b.post("/courses/2/lessons/lol/complete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	assert.Contains(t, b.get("/courses/2").Body.String(), `action="/courses/2/progress/reset"`)
	rec = b.post("/courses/2/progress/reset", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/courses/2", rec.Header().Get("Location"))
	body := b.get("/courses/2").Body.String()
	assert.Contains(t, body, "Progress: 0%")
	assert.NotContains(t, body, "Reset progress")

	rec = newBrowser().post("/courses/2/progress/reset", nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/signin", rec.Header().Get("Location"))
}

func TestPages_certificate(t *testing.T) {
	b := signedIn(t)

	rec := b.get("/dashboard/certificates/cert1")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Certificate of Completion")
	assert.Contains(t, body, "WD-2024-001234")
	assert.Contains(t, body, "October 15, 2024")
	assert.Contains(t, body, "window.print()")
	assert.Contains(t, body, `src="/certificates/WD-2024-001234/qr.png"`)

	rec = b.get("/dashboard/certificates/lol")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = newBrowser().get("/certificates/WD-2024-001234/qr.png")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	rec = newBrowser().get("/certificates/lol/qr.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPages_admin(t *testing.T) {
	rec := signedIn(t).get("/admin")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Admin Dashboard")
	assert.Contains(t, body, "Recent Activity")
	assert.Contains(t, body, "Course Management")
}

func TestPages_classroomControls(t *testing.T) {
	b := newBrowser()
	b.referer = "http://localhost/virtual-classroom?variant=primitives"

	rec := b.post("/virtual-classroom/controls/muted", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/virtual-classroom?variant=primitives", rec.Header().Get("Location"))

	rec = b.get("/virtual-classroom")
	assert.Contains(t, rec.Body.String(), "Mute")
	assert.NotContains(t, rec.Body.String(), "Unmute")

	rec = b.post("/virtual-classroom/controls/lol", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = b.post("/virtual-classroom/chat", url.Values{"message": {"hello"}})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestPages_assets(t *testing.T) {
	rec := newBrowser().get("/assets/classroom/scene.gltf")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `{"asset":{"version":"2.0"}}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
}
