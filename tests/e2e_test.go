package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-translator/internal/model"
)

func postJSON(t *testing.T, client *http.Client, url string, body interface{}) *http.Response {
	t.Helper()

	data, err := json.Marshal(body)
	require.NoError(t, err)

	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeTask(t *testing.T, resp *http.Response) model.Task {
	t.Helper()
	defer resp.Body.Close()

	var task model.Task
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&task))
	return task
}

func TestE2E_FullWorkflow(t *testing.T) {
	upstream := StartUpstream(t)
	server, cleanup := SetupServer(t, upstream)
	defer cleanup()

	client := NewSessionClient(t)

	t.Run("health", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	var created model.Task

	t.Run("add task", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/api/tasks", map[string]string{"text": "Water the plants"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		created = decodeTask(t, resp)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "Water the plants", created.Text)
		assert.False(t, created.Completed)
		assert.Nil(t, created.Translation)
	})

	t.Run("stats after add", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/api/stats")
		require.NoError(t, err)
		defer resp.Body.Close()

		var stats struct {
			Tasks model.Stats `json:"tasks"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&stats))
		assert.Equal(t, model.Stats{Total: 1, Completed: 0, Pending: 1}, stats.Tasks)
	})

	t.Run("toggle", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/api/tasks/"+created.ID+"/toggle", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, decodeTask(t, resp).Completed)

		statsResp, err := client.Get(server.URL + "/api/stats")
		require.NoError(t, err)
		defer statsResp.Body.Close()

		var stats struct {
			Tasks model.Stats `json:"tasks"`
		}
		require.NoError(t, json.NewDecoder(statsResp.Body).Decode(&stats))
		assert.Equal(t, model.Stats{Total: 1, Completed: 1, Pending: 0}, stats.Tasks)
	})

	t.Run("translate via external service", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/api/tasks/"+created.ID+"/translate", map[string]string{"lang": "fr"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		task := decodeTask(t, resp)
		require.NotNil(t, task.Translation)
		assert.Equal(t, "fr", task.Translation.Lang)
		assert.Equal(t, "[fr] Water the plants", task.Translation.Text)
		assert.Equal(t, "Water the plants", task.Text)
		assert.Equal(t, int64(1), upstream.Calls.Load())
	})

	t.Run("dictionary phrase skips the network", func(t *testing.T) {
		before := upstream.Calls.Load()

		resp := postJSON(t, client, server.URL+"/api/tasks", map[string]string{"text": "Buy groceries"})
		task := decodeTask(t, resp)

		resp = postJSON(t, client, server.URL+"/api/tasks/"+task.ID+"/translate", map[string]string{"lang": "es"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		translated := decodeTask(t, resp)
		require.NotNil(t, translated.Translation)
		assert.Equal(t, "Comprar comestibles", translated.Translation.Text)
		assert.Equal(t, before, upstream.Calls.Load())
	})

	t.Run("list reflects everything in insertion order", func(t *testing.T) {
		resp, err := client.Get(server.URL + "/api/tasks")
		require.NoError(t, err)
		defer resp.Body.Close()

		var tasks []model.Task
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&tasks))
		require.Len(t, tasks, 2)
		assert.Equal(t, "Water the plants", tasks[0].Text)
		assert.Equal(t, "Buy groceries", tasks[1].Text)
	})
}

func TestE2E_ErrorPaths(t *testing.T) {
	upstream := StartUpstream(t)
	server, cleanup := SetupServer(t, upstream)
	defer cleanup()

	client := NewSessionClient(t)

	t.Run("empty task text is rejected", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/api/tasks", map[string]string{"text": "   "})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.NotEmpty(t, body["error"])
	})

	t.Run("unknown task id", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/api/tasks/no-such-id/toggle", nil)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	created := decodeTask(t, postJSON(t, client, server.URL+"/api/tasks", map[string]string{"text": "Read a book"}))

	t.Run("unsupported language never reaches upstream", func(t *testing.T) {
		before := upstream.Calls.Load()

		resp := postJSON(t, client, server.URL+"/api/tasks/"+created.ID+"/translate", map[string]string{"lang": "xx"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, before, upstream.Calls.Load())
	})

	t.Run("upstream failure surfaces and leaves task unchanged", func(t *testing.T) {
		upstream.FailWith(http.StatusInternalServerError)
		defer upstream.Recover()

		resp := postJSON(t, client, server.URL+"/api/tasks/"+created.ID+"/translate", map[string]string{"lang": "fr"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

		listResp, err := client.Get(server.URL + "/api/tasks")
		require.NoError(t, err)
		defer listResp.Body.Close()

		var tasks []model.Task
		require.NoError(t, json.NewDecoder(listResp.Body).Decode(&tasks))
		require.Len(t, tasks, 1)
		assert.Nil(t, tasks[0].Translation, "translation must stay empty after failed call")
	})

	t.Run("rate limit maps to 429", func(t *testing.T) {
		upstream.FailWith(http.StatusTooManyRequests)
		defer upstream.Recover()

		resp := postJSON(t, client, server.URL+"/api/tasks/"+created.ID+"/translate", map[string]string{"lang": "fr"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	})

	t.Run("recovered upstream works again", func(t *testing.T) {
		resp := postJSON(t, client, server.URL+"/api/tasks/"+created.ID+"/translate", map[string]string{"lang": "fr"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		task := decodeTask(t, resp)
		require.NotNil(t, task.Translation)
		assert.Equal(t, "[fr] Read a book", task.Translation.Text)
	})
}

func TestE2E_SessionIsolation(t *testing.T) {
	upstream := StartUpstream(t)
	server, cleanup := SetupServer(t, upstream)
	defer cleanup()

	alice := NewSessionClient(t)
	bob := NewSessionClient(t)

	resp := postJSON(t, alice, server.URL+"/api/tasks", map[string]string{"text": "Alice's task"})
	resp.Body.Close()

	listResp, err := bob.Get(server.URL + "/api/tasks")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var tasks []model.Task
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&tasks))
	assert.Empty(t, tasks, "Bob must not see Alice's tasks")
}
