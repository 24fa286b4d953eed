package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vanshika/degrees/internal/domain"
	"github.com/vanshika/degrees/internal/service"
)

// APIHandlers exposes HTTP handlers for the REST API.
type APIHandlers struct {
	logger  *slog.Logger
	service *service.DegreesService
}

// NewAPIHandlers constructs an APIHandlers instance.
func NewAPIHandlers(logger *slog.Logger, svc *service.DegreesService) *APIHandlers {
	return &APIHandlers{
		logger:  logger,
		service: svc,
	}
}

func (h *APIHandlers) handlePeople(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	response := peopleResponse{
		Name:   name,
		People: []personResponse{},
	}
	for _, p := range h.service.FindPeople(name) {
		response.People = append(response.People, toPersonResponse(p))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handlePerson(w http.ResponseWriter, r *http.Request) {
	personID := strings.TrimSpace(r.PathValue("id"))
	if personID == "" {
		writeError(w, http.StatusBadRequest, "person ID is required")
		return
	}

	detail, err := h.service.GetPerson(personID)
	if err != nil {
		h.writeServiceError(w, err, "failed to fetch person", "personId", personID)
		return
	}

	response := personDetailResponse{
		personResponse: toPersonResponse(detail.Person),
		Movies:         make([]movieResponse, 0, len(detail.Movies)),
	}
	for _, m := range detail.Movies {
		response.Movies = append(response.Movies, toMovieResponse(m))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handleMovie(w http.ResponseWriter, r *http.Request) {
	movieID := strings.TrimSpace(r.PathValue("id"))
	if movieID == "" {
		writeError(w, http.StatusBadRequest, "movie ID is required")
		return
	}

	detail, err := h.service.GetMovie(movieID)
	if err != nil {
		h.writeServiceError(w, err, "failed to fetch movie", "movieId", movieID)
		return
	}

	response := movieDetailResponse{
		movieResponse: toMovieResponse(detail.Movie),
		Stars:         make([]personResponse, 0, len(detail.Stars)),
	}
	for _, p := range detail.Stars {
		response.Stars = append(response.Stars, toPersonResponse(p))
	}
	respondJSON(w, http.StatusOK, response)
}

func (h *APIHandlers) handleDegrees(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sourceID := strings.TrimSpace(query.Get("source"))
	targetID := strings.TrimSpace(query.Get("target"))
	sourceName := strings.TrimSpace(query.Get("sourceName"))
	targetName := strings.TrimSpace(query.Get("targetName"))

	var (
		conn domain.Connection
		err  error
	)
	switch {
	case sourceID != "" && targetID != "":
		conn, err = h.service.Connect(r.Context(), sourceID, targetID)
	case sourceName != "" && targetName != "":
		conn, err = h.service.ConnectNames(r.Context(), sourceName, targetName)
	default:
		writeError(w, http.StatusBadRequest, "source and target (or sourceName and targetName) are required")
		return
	}
	if err != nil {
		h.writeServiceError(w, err, "failed to compute degrees of separation",
			"source", firstNonEmpty(sourceID, sourceName),
			"target", firstNonEmpty(targetID, targetName),
		)
		return
	}

	respondJSON(w, http.StatusOK, toDegreesResponse(conn))
}

// writeServiceError maps service errors onto HTTP statuses.
func (h *APIHandlers) writeServiceError(w http.ResponseWriter, err error, msg string, attrs ...any) {
	var ambiguous *service.AmbiguousNameError
	switch {
	case errors.As(err, &ambiguous):
		candidates := make([]personResponse, 0, len(ambiguous.Candidates))
		for _, c := range ambiguous.Candidates {
			candidates = append(candidates, toPersonResponse(c))
		}
		respondJSON(w, http.StatusConflict, ambiguousNameResponse{
			Error:      ambiguous.Error(),
			Name:       ambiguous.Name,
			Candidates: candidates,
		})
	case service.IsNotFound(err):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrMissingEndpoint):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error(msg, append([]any{"error", err}, attrs...)...)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

type personResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Birth *int   `json:"birth"`
}

type movieResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Year  int    `json:"year,omitempty"`
}

type peopleResponse struct {
	Name   string           `json:"name"`
	People []personResponse `json:"people"`
}

type personDetailResponse struct {
	personResponse
	Movies []movieResponse `json:"movies"`
}

type movieDetailResponse struct {
	movieResponse
	Stars []personResponse `json:"stars"`
}

type stepResponse struct {
	Index       int            `json:"index"`
	From        personResponse `json:"from"`
	To          personResponse `json:"to"`
	Movie       movieResponse  `json:"movie"`
	Description string         `json:"description"`
}

type degreesResponse struct {
	SourceID  string         `json:"sourceId"`
	TargetID  string         `json:"targetId"`
	Connected bool           `json:"connected"`
	Degrees   *int           `json:"degrees,omitempty"`
	Path      []stepResponse `json:"path"`
}

type ambiguousNameResponse struct {
	Error      string           `json:"error"`
	Name       string           `json:"name"`
	Candidates []personResponse `json:"candidates"`
}

func toPersonResponse(p domain.Person) personResponse {
	return personResponse{ID: p.ID, Name: p.Name, Birth: p.Birth}
}

func toMovieResponse(m domain.Movie) movieResponse {
	return movieResponse{ID: m.ID, Title: m.Title, Year: m.Year}
}

func toDegreesResponse(conn domain.Connection) degreesResponse {
	response := degreesResponse{
		SourceID:  conn.SourceID,
		TargetID:  conn.TargetID,
		Connected: conn.Connected,
		Path:      make([]stepResponse, 0, len(conn.Steps)),
	}
	if conn.Connected {
		degrees := conn.Degrees
		response.Degrees = &degrees
	}
	for _, step := range conn.Steps {
		response.Path = append(response.Path, stepResponse{
			Index:       step.Index,
			From:        toPersonResponse(step.From),
			To:          toPersonResponse(step.To),
			Movie:       toMovieResponse(step.Movie),
			Description: step.String(),
		})
	}
	return response
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func writeError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{
		"error": msg,
	})
}
