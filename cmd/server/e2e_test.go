package main

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndToEndScenario(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())

	s.signup("Ada Admin", "ada@example.com", "ADMIN")
	admin := s.login("ada@example.com")
	require.NotEmpty(t, admin.JWT)
	assert.Equal(t, "ADMIN", admin.UserRole)

	s.signup("Xavier", "x@example.com", "")
	x := s.login("x@example.com")
	assert.Equal(t, "EMPLOYEE", x.UserRole)

	var earlier taskResponse
	status := s.do(http.MethodPost, "/api/admin/task", admin.JWT, map[string]any{
		"title":      "Earlier",
		"dueDate":    "2024-06-01",
		"priority":   "LOW",
		"employeeId": x.UserID,
	}, &earlier)
	require.Equal(t, http.StatusCreated, status)

	var created taskResponse
	status = s.do(http.MethodPost, "/api/admin/task", admin.JWT, map[string]any{
		"title":       "Quarterly report",
		"description": "numbers",
		"dueDate":     "2025-01-01",
		"priority":    "HIGH",
		"employeeId":  x.UserID,
	}, &created)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "INPROGRESS", created.TaskStatus)
	assert.Equal(t, "Xavier", created.EmployeeName)
	assert.Equal(t, "2025-01-01T00:00:00Z", created.DueDate)

	var own []taskResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/employee/tasks", x.JWT, nil, &own))
	require.Len(t, own, 2)
	assert.Equal(t, created.ID, own[0].ID)

	var updated taskResponse
	path := "/api/employee/tasks/" + created.ID + "/COMPLETED"
	require.Equal(t, http.StatusOK, s.do(http.MethodPut, path, x.JWT, nil, &updated))
	assert.Equal(t, "COMPLETED", updated.TaskStatus)

	var all []taskResponse
	require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/tasks", admin.JWT, nil, &all))
	require.Len(t, all, 2)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Equal(t, "COMPLETED", all[0].TaskStatus)
	assert.Equal(t, earlier.ID, all[1].ID)
}

func TestAccessFailuresAreDistinct(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	s.signup("Ada", "ada@example.com", "ADMIN")
	s.signup("Eli", "eli@example.com", "EMPLOYEE")
	s.signup("Fay", "fay@example.com", "EMPLOYEE")
	admin := s.login("ada@example.com")
	eli := s.login("eli@example.com")
	fay := s.login("fay@example.com")

	var task taskResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/admin/task", admin.JWT, map[string]any{
		"title": "Eli's", "dueDate": "2025-01-01", "employeeId": eli.UserID,
	}, &task))

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/admin/tasks", "", http.StatusUnauthorized},
		{"garbage token", http.MethodGet, "/api/admin/tasks", "not.a.jwt", http.StatusUnauthorized},
		{"tampered token", http.MethodGet, "/api/admin/tasks", admin.JWT + "x", http.StatusUnauthorized},
		{"employee on admin list", http.MethodGet, "/api/admin/tasks", eli.JWT, http.StatusForbidden},
		{"employee on admin users", http.MethodGet, "/api/admin/users", eli.JWT, http.StatusForbidden},
		{"employee on admin delete", http.MethodDelete, "/api/admin/task/" + task.ID, eli.JWT, http.StatusForbidden},
		{"employee on admin comment", http.MethodPost, "/api/admin/task/comment/" + task.ID + "?content=hi", eli.JWT, http.StatusForbidden},
		{"admin on employee list", http.MethodGet, "/api/employee/tasks", admin.JWT, http.StatusForbidden},
		{"foreign task", http.MethodGet, "/api/employee/task/" + task.ID, fay.JWT, http.StatusNotFound},
		{"foreign status update", http.MethodPut, "/api/employee/tasks/" + task.ID + "/COMPLETED", fay.JWT, http.StatusNotFound},
		{"missing task", http.MethodGet, "/api/admin/task/" + uuid.NewString(), admin.JWT, http.StatusNotFound},
		{"malformed id", http.MethodGet, "/api/admin/task/not-a-uuid", admin.JWT, http.StatusBadRequest},
		{"own task", http.MethodGet, "/api/employee/task/" + task.ID, eli.JWT, http.StatusOK},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, s.do(tc.method, tc.path, tc.token, nil, nil))
		})
	}

	// The forbidden delete above must not have removed anything.
	assert.Equal(t, 1, s.db.TaskCount())
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	s.signup("Ada", "ada@example.com", "")

	var unknown, wrong errorResponse
	st1 := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "password123",
	}, &unknown)
	st2 := s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong-password",
	}, &wrong)

	assert.Equal(t, http.StatusUnauthorized, st1)
	assert.Equal(t, st1, st2)
	assert.Equal(t, unknown.Error, wrong.Error)
	assert.NotEmpty(t, unknown.TraceID)
}

func TestSignup(t *testing.T) {
	t.Parallel()

	t.Run("duplicate email conflicts", func(t *testing.T) {
		s := newTestServer(t, testConfig())
		s.signup("Ada", "ada@example.com", "")

		status := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
			"name": "Ada 2", "email": "ada@example.com", "password": "password123",
		}, nil)
		assert.Equal(t, http.StatusConflict, status)
	})

	t.Run("invalid payload", func(t *testing.T) {
		s := newTestServer(t, testConfig())
		var body errorResponse
		status := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
			"name": "Ada", "email": "not-an-email", "password": "password123",
		}, &body)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, "Invalid email: invalid email format", body.Error)
	})

	t.Run("admin signup disabled", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.AllowAdminSignup = false
		s := newTestServer(t, cfg)

		status := s.do(http.MethodPost, "/api/auth/signup", "", map[string]string{
			"name": "Mal", "email": "mal@example.com", "password": "password123", "userRole": "ADMIN",
		}, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})
}

func TestTaskLifecycleOverHTTP(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	s.signup("Ada", "ada@example.com", "ADMIN")
	s.signup("Eli", "eli@example.com", "")
	admin := s.login("ada@example.com")
	eli := s.login("eli@example.com")

	t.Run("unknown employee creates nothing", func(t *testing.T) {
		status := s.do(http.MethodPost, "/api/admin/task", admin.JWT, map[string]any{
			"title": "ghost", "dueDate": "2025-01-01", "employeeId": uuid.NewString(),
		}, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, 0, s.db.TaskCount())
	})

	var task taskResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/admin/task", admin.JWT, map[string]any{
		"title": "Quarterly report", "dueDate": "2025-01-01T09:00:00Z", "employeeId": eli.UserID,
	}, &task))

	t.Run("unrecognized status falls back to CANCELED", func(t *testing.T) {
		var out taskResponse
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/employee/tasks/"+task.ID+"/bogus", eli.JWT, nil, &out))
		assert.Equal(t, "CANCELED", out.TaskStatus)
	})

	t.Run("admin full update", func(t *testing.T) {
		var out taskResponse
		require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/admin/task/"+task.ID, admin.JWT, map[string]any{
			"title": "Annual report", "dueDate": "2025-12-31", "employeeId": eli.UserID, "taskStatus": "PENDING",
		}, &out))
		assert.Equal(t, "Annual report", out.Title)
		assert.Equal(t, "PENDING", out.TaskStatus)
	})

	t.Run("admin update without status cancels", func(t *testing.T) {
		var out taskResponse
		require.Equal(t, http.StatusOK, s.do(http.MethodPut, "/api/admin/task/"+task.ID, admin.JWT, map[string]any{
			"title": "Annual report", "dueDate": "2025-12-31", "employeeId": eli.UserID,
		}, &out))
		assert.Equal(t, "CANCELED", out.TaskStatus)
	})

	t.Run("search is case-sensitive", func(t *testing.T) {
		var hits, misses []taskResponse
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/tasks/search/Annual", admin.JWT, nil, &hits))
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/tasks/search/annual", admin.JWT, nil, &misses))
		assert.Len(t, hits, 1)
		assert.Empty(t, misses)
	})

	t.Run("comments in both forms, oldest first", func(t *testing.T) {
		var c1, c2 commentResponse
		path := "/api/employee/task/comment/" + task.ID + "?content=" + url.QueryEscape("on it")
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, path, eli.JWT, nil, &c1))
		require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/admin/task/comment/"+task.ID, admin.JWT,
			map[string]string{"content": "thanks"}, &c2))
		assert.Equal(t, "Eli", c1.PostedBy)

		var list []commentResponse
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/employee/comments/"+task.ID, eli.JWT, nil, &list))
		require.Len(t, list, 2)
		assert.Equal(t, "on it", list[0].Content)
		assert.Equal(t, "Ada", list[1].PostedBy)
	})

	t.Run("employee directory", func(t *testing.T) {
		var users []struct {
			Email    string `json:"email"`
			UserRole string `json:"userRole"`
		}
		require.Equal(t, http.StatusOK, s.do(http.MethodGet, "/api/admin/users", admin.JWT, nil, &users))
		require.Len(t, users, 1)
		assert.Equal(t, "eli@example.com", users[0].Email)
	})

	t.Run("delete then comment is not found and leaves no orphan", func(t *testing.T) {
		require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, "/api/admin/task/"+task.ID, admin.JWT, nil, nil))
		assert.Equal(t, 0, s.db.CommentCount())

		status := s.do(http.MethodPost, "/api/admin/task/comment/"+task.ID+"?content=late", admin.JWT, nil, nil)
		assert.Equal(t, http.StatusNotFound, status)
		assert.Equal(t, 0, s.db.CommentCount())

		status = s.do(http.MethodDelete, "/api/admin/task/"+task.ID, admin.JWT, nil, nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestStrictStatusOverHTTP(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.Task.StrictStatus = true
	s := newTestServer(t, cfg)
	s.signup("Ada", "ada@example.com", "ADMIN")
	s.signup("Eli", "eli@example.com", "")
	admin := s.login("ada@example.com")
	eli := s.login("eli@example.com")

	var task taskResponse
	require.Equal(t, http.StatusCreated, s.do(http.MethodPost, "/api/admin/task", admin.JWT, map[string]any{
		"title": "t", "dueDate": "2025-01-01", "employeeId": eli.UserID,
	}, &task))

	var body errorResponse
	status := s.do(http.MethodPut, "/api/employee/tasks/"+task.ID+"/completed", eli.JWT, nil, &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid task status", body.Error)
}

func TestDeletedIdentityIsUnauthenticated(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	s.signup("Eli", "eli@example.com", "")
	eli := s.login("eli@example.com")

	id, err := uuid.Parse(eli.UserID)
	require.NoError(t, err)
	require.NoError(t, s.db.Users.Delete(context.Background(), id))

	assert.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, "/api/employee/tasks", eli.JWT, nil, nil))
}

func TestHealth(t *testing.T) {
	t.Parallel()

	s := newTestServer(t, testConfig())
	resp, err := s.Client().Get(s.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-Id"))
}
