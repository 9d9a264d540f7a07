package aggregates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/dbctx"
)

type QuizAggregateDeps struct {
	Base BaseDeps

	Quizzes   repos.QuizRepo
	Questions repos.QuestionRepo
	Choices   repos.ChoiceRepo
	Attempts  repos.QuizAttemptRepo
	Answers   repos.QuizAnswerRepo
	Users     repos.UserRepo
}

type quizAggregate struct {
	deps QuizAggregateDeps
}

func NewQuizAggregate(deps QuizAggregateDeps) domainagg.QuizAggregate {
	deps.Base = deps.Base.withDefaults()
	return &quizAggregate{deps: deps}
}

func (a *quizAggregate) Contract() domainagg.Contract {
	return domainagg.QuizAggregateContract
}

func (a *quizAggregate) AddQuestion(ctx context.Context, in domainagg.AddQuestionInput) (domainagg.AddQuestionResult, error) {
	const op = "Learning.Quiz.AddQuestion"
	var out domainagg.AddQuestionResult

	if in.QuizID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing quiz_id", nil)
	}
	if strings.TrimSpace(in.Text) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing text", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		quiz, err := a.deps.Quizzes.GetByID(dbc.Ctx, dbc.Tx, in.QuizID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Question", in.TenantID, "quiz", quiz.TenantID); gerr != nil {
			return gerr
		}
		order := in.Order
		if order == 0 {
			max, err := a.deps.Questions.MaxOrderByQuizID(dbc.Ctx, dbc.Tx, in.QuizID)
			if err != nil {
				return err
			}
			order = max + 1
		}
		if gerr := RequireOrder("order", order); gerr != nil {
			return gerr
		}
		created, err := a.deps.Questions.Create(dbc.Ctx, dbc.Tx, &types.Question{
			QuizID: in.QuizID,
			Text:   strings.TrimSpace(in.Text),
			Order:  order,
		})
		if err != nil {
			return err
		}
		out.QuestionID = created.ID
		out.Order = created.Order
		return nil
	})
	return out, err
}

func (a *quizAggregate) AddChoice(ctx context.Context, in domainagg.AddChoiceInput) (domainagg.AddChoiceResult, error) {
	const op = "Learning.Quiz.AddChoice"
	var out domainagg.AddChoiceResult

	if in.QuestionID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing question_id", nil)
	}
	if strings.TrimSpace(in.Text) == "" {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing text", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		question, err := a.deps.Questions.GetByID(dbc.Ctx, dbc.Tx, in.QuestionID)
		if err != nil {
			return err
		}
		quiz, err := a.deps.Quizzes.GetByID(dbc.Ctx, dbc.Tx, question.QuizID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("Choice", in.TenantID, "quiz", quiz.TenantID); gerr != nil {
			return gerr
		}
		created, err := a.deps.Choices.Create(dbc.Ctx, dbc.Tx, &types.Choice{
			QuestionID: in.QuestionID,
			Text:       strings.TrimSpace(in.Text),
			IsCorrect:  in.IsCorrect,
		})
		if err != nil {
			return err
		}
		out.ChoiceID = created.ID
		return nil
	})
	return out, err
}

func (a *quizAggregate) StartAttempt(ctx context.Context, in domainagg.StartQuizAttemptInput) (domainagg.StartQuizAttemptResult, error) {
	const op = "Progress.Quiz.StartAttempt"
	var out domainagg.StartQuizAttemptResult

	if in.UserID == uuid.Nil || in.QuizID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id or quiz_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		quiz, err := a.deps.Quizzes.GetByID(dbc.Ctx, dbc.Tx, in.QuizID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("QuizAttempt", in.TenantID, "quiz", quiz.TenantID); gerr != nil {
			return gerr
		}
		user, err := a.deps.Users.GetByID(dbc.Ctx, dbc.Tx, in.UserID)
		if err != nil {
			return err
		}
		if user.TenantID == nil {
			return InvariantError("QuizAttempt tenant must match user tenant.")
		}
		if gerr := RequireSameTenant("QuizAttempt", in.TenantID, "user", *user.TenantID); gerr != nil {
			return gerr
		}

		prior, err := a.deps.Attempts.CountByUserAndQuiz(dbc.Ctx, dbc.Tx, in.UserID, in.QuizID)
		if err != nil {
			return err
		}
		if quiz.MaxAttempts > 0 && prior >= int64(quiz.MaxAttempts) {
			return PreconditionError(fmt.Sprintf("attempt limit reached (%d)", quiz.MaxAttempts))
		}

		now := time.Now().UTC()
		created, err := a.deps.Attempts.Create(dbc.Ctx, dbc.Tx, &types.QuizAttempt{
			TenantID:  in.TenantID,
			UserID:    in.UserID,
			QuizID:    in.QuizID,
			StartedAt: now,
		})
		if err != nil {
			return err
		}
		out.AttemptID = created.ID
		out.StartedAt = created.StartedAt
		out.AttemptNumber = int(prior) + 1
		return nil
	})
	return out, err
}

func (a *quizAggregate) SubmitAttempt(ctx context.Context, in domainagg.SubmitQuizAttemptInput) (domainagg.SubmitQuizAttemptResult, error) {
	const op = "Progress.Quiz.SubmitAttempt"
	var out domainagg.SubmitQuizAttemptResult

	if in.AttemptID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing attempt_id", nil)
	}
	if in.UserID == uuid.Nil {
		return out, domainagg.NewError(domainagg.CodeValidation, op, "missing user_id", nil)
	}

	err := executeWrite(ctx, a.deps.Base, op, func(dbc dbctx.Context) error {
		attempt, err := a.deps.Attempts.GetByID(dbc.Ctx, dbc.Tx, in.AttemptID)
		if err != nil {
			return err
		}
		if gerr := RequireSameTenant("QuizAttempt", in.TenantID, "attempt", attempt.TenantID); gerr != nil {
			return gerr
		}
		// Only the user who opened the attempt may submit it.
		if attempt.UserID != in.UserID {
			return domainagg.NewError(domainagg.CodeNotFound, op, "attempt not found", nil)
		}
		if attempt.SubmittedAt != nil {
			return ConflictError("attempt already submitted")
		}

		questions, err := a.deps.Questions.GetByQuizID(dbc.Ctx, dbc.Tx, attempt.QuizID)
		if err != nil {
			return err
		}
		questionIDs := make([]uuid.UUID, 0, len(questions))
		byQuestion := make(map[uuid.UUID]*types.Question, len(questions))
		for _, q := range questions {
			questionIDs = append(questionIDs, q.ID)
			byQuestion[q.ID] = q
		}
		choices, err := a.deps.Choices.GetByQuestionIDs(dbc.Ctx, dbc.Tx, questionIDs)
		if err != nil {
			return err
		}
		correct := make(map[uuid.UUID]uuid.UUID, len(questions))
		valid := make(map[uuid.UUID]map[uuid.UUID]bool, len(questions))
		for _, c := range choices {
			if valid[c.QuestionID] == nil {
				valid[c.QuestionID] = map[uuid.UUID]bool{}
			}
			valid[c.QuestionID][c.ID] = true
			if c.IsCorrect {
				correct[c.QuestionID] = c.ID
			}
		}

		answers := make([]*types.QuizAnswer, 0, len(in.Answers))
		scored := 0
		for _, ans := range in.Answers {
			q, ok := byQuestion[ans.QuestionID]
			if !ok {
				return InvariantError("answer references a question outside the quiz")
			}
			if ans.ChoiceID != nil && !valid[q.ID][*ans.ChoiceID] {
				return InvariantError("answer references a choice outside the question")
			}
			if ans.ChoiceID != nil && correct[q.ID] == *ans.ChoiceID {
				scored++
			}
			answers = append(answers, &types.QuizAnswer{
				AttemptID:  attempt.ID,
				QuestionID: ans.QuestionID,
				ChoiceID:   ans.ChoiceID,
				TextAnswer: strings.TrimSpace(ans.TextAnswer),
			})
		}
		if _, err := a.deps.Answers.CreateBatch(dbc.Ctx, dbc.Tx, answers); err != nil {
			return err
		}

		scorePercent := 0
		if len(questions) > 0 {
			scorePercent = scored * 100 / len(questions)
		}
		if gerr := RequirePercent("score_percent", scorePercent); gerr != nil {
			return gerr
		}
		quiz, err := a.deps.Quizzes.GetByID(dbc.Ctx, dbc.Tx, attempt.QuizID)
		if err != nil {
			return err
		}
		passed := scorePercent >= quiz.PassingScore

		now := time.Now().UTC()
		if err := a.deps.Attempts.UpdateFields(dbc.Ctx, dbc.Tx, attempt.ID, map[string]any{
			"submitted_at":  now,
			"score_percent": scorePercent,
			"passed":        passed,
		}); err != nil {
			return err
		}
		out.AttemptID = attempt.ID
		out.ScorePercent = scorePercent
		out.Passed = passed
		out.SubmittedAt = now
		return nil
	})
	return out, err
}
