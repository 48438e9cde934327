package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nonprofit-ops/internal/model"
	"nonprofit-ops/internal/service"
)

type ProjectHandler struct {
	service *service.ProjectService
}

func NewProjectHandler(service *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	projects, err := h.service.List(r.Context(), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, projects, &model.Meta{Count: len(projects)})
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, project, nil)
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.Create(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, project, nil)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateProjectRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	project, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, project, nil)
}

// Delete soft-deletes the project along with its live tasks.
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	actor := actorFromRequest(r)
	ok, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actor.ID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Project not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}

func (h *ProjectHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	vis, err := visibilityFromRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	tasks, err := h.service.ListTasks(r.Context(), chi.URLParam(r, "id"), vis)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, tasks, &model.Meta{Count: len(tasks)})
}

func (h *ProjectHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req model.CreateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.CreateTask(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, task, nil)
}

func (h *ProjectHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	task, err := h.service.UpdateTask(r.Context(), chi.URLParam(r, "taskID"), req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, task, nil)
}

func (h *ProjectHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	var req model.DeleteRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}
	}

	actor := actorFromRequest(r)
	ok, err := h.service.DeleteTask(r.Context(), chi.URLParam(r, "taskID"), actor.ID, req.Reason)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeNotFoundOutcome(w, "Task not found or already deleted")
		return
	}

	writeSuccess(w, http.StatusOK, map[string]string{"status": "deleted"}, nil)
}
