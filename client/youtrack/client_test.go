package youtrack_test

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"cloyt/client"
	"cloyt/client/youtrack"

	. "github.com/onsi/gomega"
)

func TestProjects(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should list visible projects", func(t *testing.T) {
		var gotPath, gotAuth, gotFields string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			gotFields = r.URL.Query().Get("fields")
			w.Write([]byte(`[{"id": "0-1", "name": "Alphabet", "shortName": "ABC"}]`))
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "perm-token", 0, nil)
		projects, err := c.Projects(context.Background())
		Expect(err).To(BeNil())

		Expect(gotPath).To(Equal("/api/admin/projects"))
		Expect(gotAuth).To(Equal("Bearer perm-token"))
		Expect(gotFields).To(Equal("id,name,shortName"))
		Expect(projects).To(Equal([]youtrack.Project{{ID: "0-1", Name: "Alphabet", ShortName: "ABC"}}))
	})

	t.Run("should report rejected credentials as ErrUnauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "expired", 0, nil)
		_, err := c.Projects(context.Background())
		Expect(errors.Is(err, youtrack.ErrUnauthorized)).To(BeTrue())
	})

	t.Run("should report forbidden as ErrUnauthorized too", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "no-perm", 0, nil)
		_, err := c.Projects(context.Background())
		Expect(errors.Is(err, youtrack.ErrUnauthorized)).To(BeTrue())
	})
}

func TestWorkItemTypes(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should fetch once and serve repeats from the cache", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			Expect(r.URL.Path).To(Equal("/api/admin/projects/0-1/timeTrackingSettings/workItemTypes"))
			w.Write([]byte(`[{"id": "86-1", "name": "Development"}]`))
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "perm-token", 0, nil)
		workItemTypes, err := c.WorkItemTypes(context.Background(), "0-1")
		Expect(err).To(BeNil())
		Expect(workItemTypes).To(Equal([]youtrack.WorkItemType{{ID: "86-1", Name: "Development"}}))

		again, err := c.WorkItemTypes(context.Background(), "0-1")
		Expect(err).To(BeNil())
		Expect(again).To(Equal(workItemTypes))
		Expect(requests).To(Equal(1))
	})
}

func TestIssueWorkItems(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should list the work items of an issue", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodGet))
			Expect(r.URL.Path).To(Equal("/api/issues/ABC-42/timeTracking/workItems"))
			w.Write([]byte(`[{"id": "142-1", "text": "existing item"}]`))
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "perm-token", 0, nil)
		items, err := c.IssueWorkItems(context.Background(), "ABC-42")
		Expect(err).To(BeNil())
		Expect(items).To(Equal([]youtrack.IssueWorkItem{{ID: "142-1", Text: "existing item"}}))
	})
}

func TestCreateIssueWorkItem(t *testing.T) {
	RegisterTestingT(t)

	t.Run("should post the work item and return the created resource", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			Expect(r.Method).To(Equal(http.MethodPost))
			Expect(r.URL.Path).To(Equal("/api/issues/ABC-42/timeTracking/workItems"))
			Expect(r.Header.Get("Content-Type")).To(Equal("application/json"))
			raw, err := ioutil.ReadAll(r.Body)
			Expect(err).To(BeNil())
			Expect(json.Unmarshal(raw, &gotBody)).To(BeNil())
			w.Write([]byte(`{"id": "142-2", "text": "**fix the login form**"}`))
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "perm-token", 0, nil)
		created, err := c.CreateIssueWorkItem(context.Background(), "ABC-42", youtrack.IssueWorkItemCreation{
			Date:     1622541600000,
			Duration: youtrack.DurationValue{Minutes: 45},
			Text:     "**fix the login form**",
			Type:     &youtrack.WorkItemTypeRef{ID: "86-1"},
		})
		Expect(err).To(BeNil())
		Expect(created.ID).To(Equal("142-2"))

		Expect(gotBody["date"]).To(Equal(float64(1622541600000)))
		Expect(gotBody["duration"]).To(Equal(map[string]interface{}{"minutes": float64(45)}))
		Expect(gotBody["text"]).To(Equal("**fix the login form**"))
		Expect(gotBody["type"]).To(Equal(map[string]interface{}{"id": "86-1"}))
	})

	t.Run("should omit the type when none is resolved", func(t *testing.T) {
		var gotBody map[string]interface{}
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := ioutil.ReadAll(r.Body)
			Expect(err).To(BeNil())
			Expect(json.Unmarshal(raw, &gotBody)).To(BeNil())
			w.Write([]byte(`{"id": "142-3", "text": "**tuning**"}`))
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "perm-token", 0, nil)
		_, err := c.CreateIssueWorkItem(context.Background(), "ABC-42", youtrack.IssueWorkItemCreation{
			Date: 1622541600000, Duration: youtrack.DurationValue{Minutes: 1}, Text: "**tuning**",
		})
		Expect(err).To(BeNil())
		_, hasType := gotBody["type"]
		Expect(hasType).To(BeFalse())
	})

	t.Run("should surface a rejected creation as ApiError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error": "Invalid duration"}`))
		}))
		defer server.Close()

		c := youtrack.NewClient(server.URL, "perm-token", 0, nil)
		_, err := c.CreateIssueWorkItem(context.Background(), "ABC-42", youtrack.IssueWorkItemCreation{
			Date: 1622541600000, Duration: youtrack.DurationValue{Minutes: 0}, Text: "x",
		})

		var apiErr *client.ApiError
		Expect(errors.As(err, &apiErr)).To(BeTrue())
		Expect(apiErr.StatusCode).To(Equal(http.StatusBadRequest))
	})
}
