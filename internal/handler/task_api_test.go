package handler_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklight/tasklight/internal/handler/dto"
)

func listTasks(t *testing.T, router http.Handler, token string) []dto.TaskResponse {
	t.Helper()
	rec := doJSON(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, "list failed: %s", rec.Body.String())

	var tasks []dto.TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tasks))
	return tasks
}

func createTask(t *testing.T, router http.Handler, token, text string) dto.TaskResponse {
	t.Helper()
	rec := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]string{"text": text})
	require.Equal(t, http.StatusCreated, rec.Code, "create failed: %s", rec.Body.String())

	var task dto.TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&task))
	return task
}

func TestTasks_RequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/tasks"},
		{http.MethodPost, "/tasks"},
		{http.MethodPut, "/tasks/some-id"},
		{http.MethodDelete, "/tasks/some-id"},
	} {
		rec := doJSON(t, router, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), "No token, authorization denied")
	}
}

func TestTasks_CreateListDeleteRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerUser(t, router, "alice", "a@x.com", "pw1")

	task := createTask(t, router, token, "buy milk")
	assert.Equal(t, "buy milk", task.Text)
	assert.NotEmpty(t, task.ID)
	assert.NotEmpty(t, task.OwnerID)

	tasks := listTasks(t, router, token)
	require.Len(t, tasks, 1)
	assert.Equal(t, task.ID, tasks[0].ID)
	assert.Equal(t, "buy milk", tasks[0].Text)

	rec := doJSON(t, router, http.MethodDelete, "/tasks/"+task.ID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task deleted")

	assert.Empty(t, listTasks(t, router, token))
}

func TestTasks_ListEmptyIsArray(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerUser(t, router, "alice", "a@x.com", "pw1")

	rec := doJSON(t, router, http.MethodGet, "/tasks", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty list must serialize as [], not null")
}

func TestTasks_CreateEmptyTextRejected(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerUser(t, router, "alice", "a@x.com", "pw1")

	for _, text := range []string{"", "   "} {
		rec := doJSON(t, router, http.MethodPost, "/tasks", token, map[string]string{"text": text})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "VALIDATION")
	}

	assert.Empty(t, listTasks(t, router, token))
}

func TestTasks_Update(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerUser(t, router, "alice", "a@x.com", "pw1")

	task := createTask(t, router, token, "old text")

	rec := doJSON(t, router, http.MethodPut, "/tasks/"+task.ID, token, map[string]string{"text": "new text"})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated dto.TaskResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&updated))
	assert.Equal(t, task.ID, updated.ID)
	assert.Equal(t, "new text", updated.Text)

	tasks := listTasks(t, router, token)
	require.Len(t, tasks, 1)
	assert.Equal(t, "new text", tasks[0].Text)
}

func TestTasks_UpdateMissingIs404(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerUser(t, router, "alice", "a@x.com", "pw1")

	rec := doJSON(t, router, http.MethodPut, "/tasks/01HTZZZZZZZZZZZZZZZZZZZZZZ", token, map[string]string{"text": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task not found")
}

func TestTasks_DeleteMissingIsIdempotent(t *testing.T) {
	router, _ := newTestRouter(t)
	token := registerUser(t, router, "alice", "a@x.com", "pw1")

	rec := doJSON(t, router, http.MethodDelete, "/tasks/01HTZZZZZZZZZZZZZZZZZZZZZZ", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Task deleted")
}

func TestTasks_CrossUserIsolation(t *testing.T) {
	router, _ := newTestRouter(t)

	// Register alice, create a task, confirm it appears for her.
	aliceToken := registerUser(t, router, "alice", "a@x.com", "pw1")
	aliceTask := createTask(t, router, aliceToken, "buy milk")

	aliceTasks := listTasks(t, router, aliceToken)
	require.Len(t, aliceTasks, 1)

	// Register bob: his list is empty.
	bobToken := registerUser(t, router, "bob", "b@x.com", "pw2")
	assert.Empty(t, listTasks(t, router, bobToken))

	// Bob updating alice's task gets the same 404 as a nonexistent id.
	foreign := doJSON(t, router, http.MethodPut, "/tasks/"+aliceTask.ID, bobToken, map[string]string{"text": "hijack"})
	missing := doJSON(t, router, http.MethodPut, "/tasks/01HTZZZZZZZZZZZZZZZZZZZZZZ", bobToken, map[string]string{"text": "hijack"})
	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, missing.Code, foreign.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String(),
		"foreign and nonexistent tasks must be indistinguishable")

	// Bob deleting alice's task reports success but changes nothing.
	rec := doJSON(t, router, http.MethodDelete, "/tasks/"+aliceTask.ID, bobToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	aliceTasks = listTasks(t, router, aliceToken)
	require.Len(t, aliceTasks, 1)
	assert.Equal(t, "buy milk", aliceTasks[0].Text)
}
