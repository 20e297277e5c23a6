package simulation

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/enem-prep/backend/internal/irt"
	"github.com/enem-prep/backend/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the simulation endpoints. Scoring and result
// listing require authentication; the area inventory does not.
func (h *Handler) RegisterRoutes(api, protected *mux.Router) {
	api.HandleFunc("/areas", h.GetAreas).Methods("GET")
	protected.HandleFunc("/simulations", h.StartSimulation).Methods("POST")
	protected.HandleFunc("/simulations/score", h.ScoreSimulation).Methods("POST")
	protected.HandleFunc("/results", h.GetResults).Methods("GET")
}

// getUserID extracts the authenticated user ID from the request context.
func getUserID(r *http.Request) (int64, bool) {
	uid, ok := r.Context().Value("user_id").(int64)
	return uid, ok
}

func (h *Handler) StartSimulation(w http.ResponseWriter, r *http.Request) {
	if _, ok := getUserID(r); !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.StartSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidAreas[req.Area] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "area must be one of LC, CH, CN, MT"})
		return
	}

	resp, err := h.service.StartSimulation(req.Area, req.Count)
	if err != nil {
		log.Printf("[handler] StartSimulation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to start simulation"})
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) ScoreSimulation(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var req models.ScoreSimulationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if !models.ValidAreas[req.Area] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "area must be one of LC, CH, CN, MT"})
		return
	}
	if len(req.Answers) == 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "answers are required"})
		return
	}

	resp, err := h.service.ScoreSimulation(userID, req)
	if err != nil {
		h.writeScoringError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// writeScoringError maps estimation failures to responses. All estimation
// failures are terminal for the attempt and nothing was persisted.
func (h *Handler) writeScoringError(w http.ResponseWriter, err error) {
	var invalidItem *irt.InvalidItemError
	var nonConv *irt.NonConvergenceError

	switch {
	case errors.Is(err, irt.ErrDegenerateResponses):
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{
			Error: "Cannot estimate proficiency for an all-correct or all-incorrect answer sheet",
		})
	case errors.As(err, &invalidItem):
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: invalidItem.Error()})
	case errors.As(err, &nonConv):
		writeJSON(w, http.StatusUnprocessableEntity, models.ErrorResponse{Error: nonConv.Error()})
	case errors.Is(err, ErrUnknownItems):
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	default:
		log.Printf("[handler] ScoreSimulation error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to score simulation"})
	}
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserID(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.ListResults(userID)
	if err != nil {
		log.Printf("[handler] GetResults error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list results"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAreas(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.AreaStats()
	if err != nil {
		log.Printf("[handler] GetAreas error: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list areas"})
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
