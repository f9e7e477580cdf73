package main

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

/*** DTOs shared across handlers ***/

type ErrorResponse struct {
	Error string `json:"error"`
}

// FetchErrorResponse keeps the empty question list next to the error so a
// client can render the topic page in its failed state.
type FetchErrorResponse struct {
	Error     string        `json:"error"`
	Questions []QuestionDTO `json:"questions"`
}

type StartSessionResp struct {
	SessionID   string        `json:"sessionId"`
	Topic       string        `json:"topic"`
	Title       string        `json:"title"`
	DurationSec int           `json:"durationSec"`
	State       State         `json:"state"`
	Questions   []QuestionDTO `json:"questions"`
	Warnings    []Warning     `json:"warnings"`
}

type AnswerReq struct {
	QuestionIndex  *int   `json:"questionIndex"`
	SelectedAnswer string `json:"selectedAnswer"`
}

type TransitionResp struct {
	Applied  bool     `json:"applied"`
	Snapshot Snapshot `json:"snapshot"`
}

type SubmitRequestResp struct {
	Applied    bool     `json:"applied"`
	Unanswered int      `json:"unanswered"`
	Total      int      `json:"total"`
	Snapshot   Snapshot `json:"snapshot"`
}

type ResultResp struct {
	SessionID string      `json:"sessionId"`
	Topic     string      `json:"topic"`
	Title     string      `json:"title"`
	Result    QuizResult  `json:"result"`
	Review    []ReviewRow `json:"review"`
}

// TopicLister is implemented by stores that can enumerate their topics.
type TopicLister interface {
	Topics(ctx context.Context) ([]string, error)
}

// parseQuestionCount reads the requested count; missing, unparsable and
// non-positive values fall back to def.
func parseQuestionCount(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "session not found"})
	case errors.Is(err, ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "session belongs to another client"})
	case errors.Is(err, ErrQuestionIndex):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, ErrNotSubmitted):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

/*** Topics ***/

// ListTopics godoc
// @Summary      List quiz topics
// @Description  Configured topics, plus any topic present in the question bank
// @Tags         topics
// @Produce      json
// @Success      200 {array} QuizTopic
// @Router       /topics [get]
func ListTopics(catalog *TopicCatalog, store QuestionStore, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		lister, ok := store.(TopicLister)
		if !ok {
			c.JSON(http.StatusOK, catalog.All())
			return
		}
		slugs, err := lister.Topics(c.Request.Context())
		if err != nil {
			log.Warn("list store topics", zap.Error(err))
			c.JSON(http.StatusOK, catalog.All())
			return
		}
		c.JSON(http.StatusOK, catalog.Merge(slugs))
	}
}

// GetTopic godoc
// @Summary      Topic title lookup
// @Description  Unknown slugs get the generic "Practice Quiz" title
// @Tags         topics
// @Produce      json
// @Param        slug path string true "Topic slug"
// @Success      200 {object} QuizTopic
// @Router       /topics/{slug} [get]
func GetTopic(catalog *TopicCatalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if t, ok := catalog.Lookup(slug); ok {
			c.JSON(http.StatusOK, t)
			return
		}
		c.JSON(http.StatusOK, QuizTopic{Slug: slug, Title: catalog.Title(slug)})
	}
}

/*** Sessions ***/

// StartSession godoc
// @Summary      Start an exam session
// @Description  Loads the topic's question set, prepares a shuffled sample and starts the countdown
// @Tags         sessions
// @Produce      json
// @Param        slug  path  string true  "Topic slug"
// @Param        count query int    false "Number of questions (default 20)"
// @Success      201 {object} StartSessionResp
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} FetchErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      502 {object} FetchErrorResponse
// @Router       /topics/{slug}/sessions [post]
func StartSession(m *SessionManager, catalog *TopicCatalog, defaultCount int) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		if !validSlug(slug) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid topic"})
			return
		}
		count := parseQuestionCount(c.Query("count"), defaultCount)

		s, prepared, err := m.Start(c.Request.Context(), clientID(c), slug, count)
		switch {
		case err == nil:
		case errors.Is(err, ErrTopicNotFound):
			c.JSON(http.StatusNotFound, FetchErrorResponse{Error: "topic not found", Questions: []QuestionDTO{}})
			return
		case errors.Is(err, ErrNoQuestions):
			c.JSON(http.StatusNotFound, FetchErrorResponse{Error: "topic has no questions", Questions: []QuestionDTO{}})
			return
		case errors.Is(err, ErrSuperseded):
			c.JSON(http.StatusConflict, ErrorResponse{Error: "superseded by a newer load"})
			return
		default:
			c.JSON(http.StatusBadGateway, FetchErrorResponse{Error: "failed to load questions", Questions: []QuestionDTO{}})
			return
		}

		warnings := prepared.Warnings
		if warnings == nil {
			warnings = []Warning{}
		}
		snap := s.Snapshot()
		c.JSON(http.StatusCreated, StartSessionResp{
			SessionID:   s.ID,
			Topic:       slug,
			Title:       catalog.Title(slug),
			DurationSec: snap.DurationSec,
			State:       snap.State,
			Questions:   questionDTOs(s.Questions()),
			Warnings:    warnings,
		})
	}
}

// GetSession godoc
// @Summary      Session snapshot
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} Snapshot
// @Failure      403 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /sessions/{id} [get]
func GetSession(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := m.Get(c.Param("id"), clientID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, s.Snapshot())
	}
}

// AnswerQuestion godoc
// @Summary      Record a selection
// @Description  Replaces any earlier selection for the question; ignored after submission
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        id      path string    true "Session ID"
// @Param        request body AnswerReq true "Selection"
// @Success      200 {object} TransitionResp
// @Failure      400 {object} ErrorResponse
// @Router       /sessions/{id}/answers [post]
func AnswerQuestion(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnswerReq
		if err := c.ShouldBindJSON(&req); err != nil || req.QuestionIndex == nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: "bad request"})
			return
		}
		snap, applied, err := m.Answer(c.Param("id"), clientID(c), *req.QuestionIndex, req.SelectedAnswer)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, TransitionResp{Applied: applied, Snapshot: snap})
	}
}

// RequestSubmit godoc
// @Summary      Ask to submit
// @Description  Moves the session to confirm_pending and reports unanswered questions
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} SubmitRequestResp
// @Router       /sessions/{id}/submit [post]
func RequestSubmit(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, unanswered, applied, err := m.RequestSubmit(c.Param("id"), clientID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, SubmitRequestResp{
			Applied:    applied,
			Unanswered: unanswered,
			Total:      snap.TotalQuestions,
			Snapshot:   snap,
		})
	}
}

// ConfirmSubmit godoc
// @Summary      Confirm submission
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} TransitionResp
// @Router       /sessions/{id}/submit/confirm [post]
func ConfirmSubmit(m *SessionManager) gin.HandlerFunc {
	return transition(m.ConfirmSubmit)
}

// CancelSubmit godoc
// @Summary      Cancel a pending submission
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} TransitionResp
// @Router       /sessions/{id}/submit/cancel [post]
func CancelSubmit(m *SessionManager) gin.HandlerFunc {
	return transition(m.CancelSubmit)
}

func transition(fn func(id, clientID string) (Snapshot, bool, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, applied, err := fn(c.Param("id"), clientID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, TransitionResp{Applied: applied, Snapshot: snap})
	}
}

// RestartSession godoc
// @Summary      Restart the exam
// @Description  Same questions in the same order; answers cleared and time reset
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} Snapshot
// @Router       /sessions/{id}/restart [post]
func RestartSession(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := m.Restart(c.Param("id"), clientID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, snap)
	}
}

// GetResult godoc
// @Summary      Scored results
// @Description  Available once the session is submitted
// @Tags         sessions
// @Produce      json
// @Param        id path string true "Session ID"
// @Success      200 {object} ResultResp
// @Failure      409 {object} ErrorResponse
// @Router       /sessions/{id}/result [get]
func GetResult(m *SessionManager, catalog *TopicCatalog, passThreshold float64) gin.HandlerFunc {
	return func(c *gin.Context) {
		s, err := m.Get(c.Param("id"), clientID(c))
		if err != nil {
			respondError(c, err)
			return
		}
		if s.State().Phase != PhaseSubmitted {
			respondError(c, ErrNotSubmitted)
			return
		}
		c.JSON(http.StatusOK, ResultResp{
			SessionID: s.ID,
			Topic:     s.Topic,
			Title:     catalog.Title(s.Topic),
			Result:    s.Result(passThreshold),
			Review:    s.Review(),
		})
	}
}

// DeleteSession godoc
// @Summary      Leave the exam
// @Description  Stops the countdown and discards the session
// @Tags         sessions
// @Param        id path string true "Session ID"
// @Success      204
// @Router       /sessions/{id} [delete]
func DeleteSession(m *SessionManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Teardown(c.Param("id"), clientID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}

/*** Live updates ***/

func newUpgrader(allowOrigin func(string) bool) *websocket.Upgrader {
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowOrigin(origin)
		},
	}
}

// SessionStream godoc
// @Summary      WebSocket stream of session snapshots
// @Description  Sends the current snapshot, then one message per tick or transition
// @Tags         websocket
// @Param        id path string true "Session ID"
// @Router       /sessions/{id}/ws [get]
func SessionStream(m *SessionManager, hub *Hub, allowOrigin func(string) bool, log *zap.Logger) gin.HandlerFunc {
	upgrader := newUpgrader(allowOrigin)
	return func(c *gin.Context) {
		s, err := m.Get(c.Param("id"), clientID(c))
		if err != nil {
			respondError(c, err)
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Debug("ws: upgrade failed", zap.Error(err))
			return
		}
		hub.Add(s.ID, conn)
		defer hub.Remove(s.ID, conn)
		if err := hub.Send(s.ID, conn, WSMessage{Type: MsgSnapshot, Data: s.Snapshot()}); err != nil {
			return
		}

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}
}
