package aggregates

import (
	"context"
	"testing"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	repotest "github.com/crewlearn/crewlearn-backend/internal/data/repos/testutil"
	types "github.com/crewlearn/crewlearn-backend/internal/domain"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
)

func newQuizAggregateForTest(t *testing.T) (domainagg.QuizAggregate, *testFixtures) {
	t.Helper()
	db := repotest.DB(t)
	tx := repotest.Tx(t, db)
	log := repotest.Logger(t)

	agg := NewQuizAggregate(QuizAggregateDeps{
		Base: BaseDeps{
			DB:     tx,
			Log:    log,
			Runner: NewGormTxRunner(tx),
		},
		Quizzes:   repos.NewQuizRepo(tx, log),
		Questions: repos.NewQuestionRepo(tx, log),
		Choices:   repos.NewChoiceRepo(tx, log),
		Attempts:  repos.NewQuizAttemptRepo(tx, log),
		Answers:   repos.NewQuizAnswerRepo(tx, log),
		Users:     repos.NewUserRepo(tx, log),
	})
	return agg, newTestFixtures(t, tx)
}

// seedQuizWithQuestions builds a quiz with n single-correct-choice
// questions and returns the correct choice per question.
func seedQuizWithQuestions(fx *testFixtures, quiz *types.Quiz, n int) map[*types.Question]*types.Choice {
	correct := make(map[*types.Question]*types.Choice, n)
	for i := 1; i <= n; i++ {
		q := fx.Question(quiz, "Question", i)
		right := fx.Choice(q, "right", true)
		fx.Choice(q, "wrong", false)
		correct[q] = right
	}
	return correct
}

func TestStartAttemptEnforcesAttemptLimit(t *testing.T) {
	agg, fx := newQuizAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	quiz := fx.Quiz(tenant.ID, "Safety Quiz", 70, 1)

	first, err := agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, QuizID: quiz.ID,
	})
	if err != nil {
		t.Fatalf("first attempt: %v", err)
	}
	if first.AttemptNumber != 1 {
		t.Fatalf("attempt number: want=1 got=%d", first.AttemptNumber)
	}

	_, err = agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, QuizID: quiz.ID,
	})
	if !domainagg.IsCode(err, domainagg.CodePreconditionFailed) {
		t.Fatalf("over limit: want precondition_failed, got %v", err)
	}
}

func TestStartAttemptUnlimitedWhenMaxAttemptsZero(t *testing.T) {
	agg, fx := newQuizAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	quiz := fx.Quiz(tenant.ID, "Open Quiz", 70, 0)

	for i := 1; i <= 3; i++ {
		out, err := agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
			TenantID: tenant.ID, UserID: user.ID, QuizID: quiz.ID,
		})
		if err != nil {
			t.Fatalf("attempt %d: %v", i, err)
		}
		if out.AttemptNumber != i {
			t.Fatalf("attempt number: want=%d got=%d", i, out.AttemptNumber)
		}
	}
}

func TestSubmitAttemptScoresAndGrades(t *testing.T) {
	agg, fx := newQuizAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	quiz := fx.Quiz(tenant.ID, "Safety Quiz", 70, 0)
	correct := seedQuizWithQuestions(fx, quiz, 4)

	started, err := agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, QuizID: quiz.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	// Answer 3 of 4 correctly: 75% against a 70% bar.
	answers := make([]domainagg.QuizAnswerInput, 0, len(correct))
	missed := false
	for q, right := range correct {
		choiceID := right.ID
		if !missed {
			choiceID = fx.Choice(q, "also wrong", false).ID
			missed = true
		}
		answers = append(answers, domainagg.QuizAnswerInput{
			QuestionID: q.ID, ChoiceID: &choiceID,
		})
	}

	out, err := agg.SubmitAttempt(ctx, domainagg.SubmitQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, AttemptID: started.AttemptID, Answers: answers,
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if out.ScorePercent != 75 {
		t.Fatalf("score: want=75 got=%d", out.ScorePercent)
	}
	if !out.Passed {
		t.Fatalf("want passed=true at 75%% against 70%%")
	}
}

func TestSubmitAttemptTwiceConflicts(t *testing.T) {
	agg, fx := newQuizAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	quiz := fx.Quiz(tenant.ID, "Safety Quiz", 70, 0)
	seedQuizWithQuestions(fx, quiz, 1)

	started, err := agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, QuizID: quiz.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := agg.SubmitAttempt(ctx, domainagg.SubmitQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, AttemptID: started.AttemptID,
	}); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	_, err = agg.SubmitAttempt(ctx, domainagg.SubmitQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, AttemptID: started.AttemptID,
	})
	if !domainagg.IsCode(err, domainagg.CodeConflict) {
		t.Fatalf("resubmit: want conflict, got %v", err)
	}
}

func TestSubmitAttemptRejectsForeignQuestion(t *testing.T) {
	agg, fx := newQuizAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	user := fx.User(tenant.ID, "worker")
	quiz := fx.Quiz(tenant.ID, "Safety Quiz", 70, 0)
	seedQuizWithQuestions(fx, quiz, 1)
	otherQuiz := fx.Quiz(tenant.ID, "Other Quiz", 70, 0)
	foreignQ := fx.Question(otherQuiz, "Foreign", 1)

	started, err := agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
		TenantID: tenant.ID, UserID: user.ID, QuizID: quiz.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err = agg.SubmitAttempt(ctx, domainagg.SubmitQuizAttemptInput{
		TenantID:  tenant.ID,
		UserID:    user.ID,
		AttemptID: started.AttemptID,
		Answers:   []domainagg.QuizAnswerInput{{QuestionID: foreignQ.ID}},
	})
	if !domainagg.IsCode(err, domainagg.CodeInvariantViolation) {
		t.Fatalf("want invariant_violation, got %v", err)
	}
}

func TestSubmitAttemptRejectsOtherUsersAttempt(t *testing.T) {
	agg, fx := newQuizAggregateForTest(t)
	ctx := context.Background()

	tenant := fx.Tenant("acme")
	owner := fx.User(tenant.ID, "worker")
	intruder := fx.User(tenant.ID, "coworker")
	quiz := fx.Quiz(tenant.ID, "Safety Quiz", 70, 0)
	seedQuizWithQuestions(fx, quiz, 1)

	started, err := agg.StartAttempt(ctx, domainagg.StartQuizAttemptInput{
		TenantID: tenant.ID, UserID: owner.ID, QuizID: quiz.ID,
	})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	_, err = agg.SubmitAttempt(ctx, domainagg.SubmitQuizAttemptInput{
		TenantID: tenant.ID, UserID: intruder.ID, AttemptID: started.AttemptID,
	})
	if !domainagg.IsCode(err, domainagg.CodeNotFound) {
		t.Fatalf("foreign submit: want not_found, got %v", err)
	}

	if _, err := agg.SubmitAttempt(ctx, domainagg.SubmitQuizAttemptInput{
		TenantID: tenant.ID, UserID: owner.ID, AttemptID: started.AttemptID,
	}); err != nil {
		t.Fatalf("owner submit: %v", err)
	}
}
