package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sikum-app/sikum-api/internal/api/shared"
	"github.com/sikum-app/sikum-api/internal/document"
	"github.com/sikum-app/sikum-api/internal/platform/logger"
	"github.com/sikum-app/sikum-api/internal/study"
)

// StudyService is the subset of study.Service the handlers call.
type StudyService interface {
	CreateSession(ctx context.Context) (study.SessionView, error)
	GetSession(ctx context.Context, id uuid.UUID) (study.SessionView, error)
	DeleteSession(ctx context.Context, id uuid.UUID) error
	AttachDocument(ctx context.Context, id uuid.UUID, doc *document.Document) (study.DocumentInfo, error)
	RemoveDocument(ctx context.Context, id uuid.UUID) error
	StartGeneration(ctx context.Context, id uuid.UUID) (study.SessionView, error)
	Questions(ctx context.Context, id uuid.UUID) ([]study.QuestionView, error)
	Flashcards(ctx context.Context, id uuid.UUID) (study.DeckView, error)
	MoveDeck(ctx context.Context, id uuid.UUID, action study.DeckAction) (study.DeckView, error)
	Quiz(ctx context.Context, id uuid.UUID) (study.QuizView, error)
	Answer(ctx context.Context, id uuid.UUID, answer string) (study.AnswerResult, error)
	AdvanceQuiz(ctx context.Context, id uuid.UUID) (study.QuizView, error)
	RestartQuiz(ctx context.Context, id uuid.UUID) (study.QuizView, error)
}

// DocumentLoader turns uploaded bytes into a document.
type DocumentLoader interface {
	Load(ctx context.Context, name, contentType string, data []byte) (*document.Document, error)
}

// AnswerRequest represents the request body for answering a quiz question
type AnswerRequest struct {
	Answer string `json:"answer" validate:"required"`
}

// deckActionParam validates the flashcard action path segment
type deckActionParam struct {
	Action string `validate:"required,oneof=flip next previous"`
}

// QuestionsResponse wraps the question list
type QuestionsResponse struct {
	Questions []study.QuestionView `json:"questions"`
}

// SessionHandler handles study session HTTP requests
type SessionHandler struct {
	service        StudyService
	loader         DocumentLoader
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(
	service StudyService,
	loader DocumentLoader,
	maxUploadBytes int64,
	logger *slog.Logger,
) *SessionHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionHandler{
		service:        service,
		loader:         loader,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With("component", "session_handler"),
	}
}

// RegisterRoutes mounts the session endpoints on r.
func (h *SessionHandler) RegisterRoutes(r chi.Router) {
	r.Post("/sessions", h.CreateSession)
	r.Route("/sessions/{id}", func(r chi.Router) {
		r.Get("/", h.GetSession)
		r.Delete("/", h.DeleteSession)

		r.Put("/document", h.UploadDocument)
		r.Delete("/document", h.RemoveDocument)

		r.Post("/generate", h.StartGeneration)
		r.Get("/questions", h.ListQuestions)

		r.Get("/flashcards", h.GetFlashcards)
		r.Post("/flashcards/{action}", h.MoveFlashcards)

		r.Get("/quiz", h.GetQuiz)
		r.Post("/quiz/answer", h.AnswerQuiz)
		r.Post("/quiz/next", h.AdvanceQuiz)
		r.Post("/quiz/restart", h.RestartQuiz)
	})
}

// sessionID extracts the session ID or writes a 400.
func (h *SessionHandler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return uuid.Nil, false
	}
	return id, true
}

// CreateSession handles POST /api/sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.service.CreateSession(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusCreated, view)
}

// GetSession handles GET /api/sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.GetSession(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// DeleteSession handles DELETE /api/sessions/{id}
func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteSession(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadDocument handles PUT /api/sessions/{id}/document. The body is either
// a multipart form with a "file" field or the raw PDF or text bytes.
func (h *SessionHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	up, err := readUpload(w, r, h.maxUploadBytes)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	doc, err := h.loader.Load(r.Context(), up.Name, up.ContentType, up.Data)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	info, err := h.service.AttachDocument(r.Context(), id, doc)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Info("document attached",
		"session_id", id,
		"content_type", info.ContentType,
		"characters", info.Characters)
	shared.RespondWithJSON(w, r, http.StatusOK, info)
}

// RemoveDocument handles DELETE /api/sessions/{id}/document
func (h *SessionHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.service.RemoveDocument(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// StartGeneration handles POST /api/sessions/{id}/generate. It responds 202
// with the in-flight status; clients poll GET /api/sessions/{id}.
func (h *SessionHandler) StartGeneration(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.StartGeneration(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusAccepted, view)
}

// ListQuestions handles GET /api/sessions/{id}/questions
func (h *SessionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	questions, err := h.service.Questions(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, QuestionsResponse{Questions: questions})
}

// GetFlashcards handles GET /api/sessions/{id}/flashcards
func (h *SessionHandler) GetFlashcards(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Flashcards(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// MoveFlashcards handles POST /api/sessions/{id}/flashcards/{action}
func (h *SessionHandler) MoveFlashcards(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	param := deckActionParam{Action: chi.URLParam(r, "action")}
	if err := shared.ValidateRequest(param); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	view, err := h.service.MoveDeck(r.Context(), id, study.DeckAction(param.Action))
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// GetQuiz handles GET /api/sessions/{id}/quiz
func (h *SessionHandler) GetQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.Quiz(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// AnswerQuiz handles POST /api/sessions/{id}/quiz/answer
func (h *SessionHandler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var req AnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	result, err := h.service.Answer(r.Context(), id, req.Answer)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// AdvanceQuiz handles POST /api/sessions/{id}/quiz/next
func (h *SessionHandler) AdvanceQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.AdvanceQuiz(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}

// RestartQuiz handles POST /api/sessions/{id}/quiz/restart
func (h *SessionHandler) RestartQuiz(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	view, err := h.service.RestartQuiz(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, view)
}
