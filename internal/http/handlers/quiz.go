package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/http/response"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/services"
)

type QuizHandler struct {
	log     *logger.Logger
	quizzes services.QuizService
}

func NewQuizHandler(log *logger.Logger, quizzes services.QuizService) *QuizHandler {
	return &QuizHandler{
		log:     log.With("handler", "QuizHandler"),
		quizzes: quizzes,
	}
}

func (h *QuizHandler) Create(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	var req struct {
		Title        string `json:"title" binding:"required"`
		Description  string `json:"description"`
		PassingScore int    `json:"passing_score"`
		MaxAttempts  int    `json:"max_attempts"`
	}
	if !bindJSON(c, &req) {
		return
	}
	quiz, err := h.quizzes.CreateQuiz(c.Request.Context(), services.CreateQuizInput{
		TenantID:     tenantID,
		Title:        req.Title,
		Description:  req.Description,
		PassingScore: req.PassingScore,
		MaxAttempts:  req.MaxAttempts,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, quiz)
}

func (h *QuizHandler) List(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	quizzes, err := h.quizzes.ListQuizzes(c.Request.Context(), tenantID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"quizzes": quizzes})
}

func (h *QuizHandler) Get(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}
	detail, err := h.quizzes.GetQuiz(c.Request.Context(), tenantID, quizID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, detail)
}

func (h *QuizHandler) AddQuestion(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Text  string `json:"text" binding:"required"`
		Order int    `json:"order"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.quizzes.AddQuestion(c.Request.Context(), domainagg.AddQuestionInput{
		TenantID: tenantID,
		QuizID:   quizID,
		Text:     req.Text,
		Order:    req.Order,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"question_id": out.QuestionID, "order": out.Order})
}

func (h *QuizHandler) AddChoice(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	questionID, ok := pathID(c, "questionId")
	if !ok {
		return
	}
	var req struct {
		Text      string `json:"text" binding:"required"`
		IsCorrect bool   `json:"is_correct"`
	}
	if !bindJSON(c, &req) {
		return
	}
	out, err := h.quizzes.AddChoice(c.Request.Context(), domainagg.AddChoiceInput{
		TenantID:   tenantID,
		QuestionID: questionID,
		Text:       req.Text,
		IsCorrect:  req.IsCorrect,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{"choice_id": out.ChoiceID})
}

func (h *QuizHandler) StartAttempt(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.quizzes.StartAttempt(c.Request.Context(), domainagg.StartQuizAttemptInput{
		TenantID: tenantID,
		UserID:   userID,
		QuizID:   quizID,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondCreated(c, gin.H{
		"attempt_id":     out.AttemptID,
		"started_at":     out.StartedAt,
		"attempt_number": out.AttemptNumber,
	})
}

func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	attemptID, ok := pathID(c, "attemptId")
	if !ok {
		return
	}
	var req struct {
		Answers []struct {
			QuestionID uuid.UUID  `json:"question_id" binding:"required"`
			ChoiceID   *uuid.UUID `json:"choice_id"`
			TextAnswer string     `json:"text_answer"`
		} `json:"answers" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	answers := make([]domainagg.QuizAnswerInput, 0, len(req.Answers))
	for _, a := range req.Answers {
		answers = append(answers, domainagg.QuizAnswerInput{
			QuestionID: a.QuestionID,
			ChoiceID:   a.ChoiceID,
			TextAnswer: a.TextAnswer,
		})
	}
	out, err := h.quizzes.SubmitAttempt(c.Request.Context(), domainagg.SubmitQuizAttemptInput{
		TenantID:  tenantID,
		UserID:    userID,
		AttemptID: attemptID,
		Answers:   answers,
	})
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{
		"attempt_id":    out.AttemptID,
		"score_percent": out.ScorePercent,
		"passed":        out.Passed,
		"submitted_at":  out.SubmittedAt,
	})
}

func (h *QuizHandler) ListMyAttempts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, ok := pathID(c, "id")
	if !ok {
		return
	}
	attempts, err := h.quizzes.ListAttempts(c.Request.Context(), userID, quizID)
	if err != nil {
		response.RespondDomainError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"attempts": attempts})
}
