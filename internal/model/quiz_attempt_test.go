package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// questionsWithKey builds n questions whose correct answer is always
// option 0 out of three options.
func questionsWithKey(n int) []QuizQuestion {
	qs := make([]QuizQuestion, n)
	for i := range qs {
		qs[i] = QuizQuestion{
			Text:          "Question",
			Options:       []string{"right", "wrong", "wrong"},
			CorrectAnswer: 0,
		}
	}
	return qs
}

func finishAttempt(t *testing.T, a *QuizAttempt, answers []int) {
	t.Helper()
	for i, ans := range answers {
		require.NoError(t, a.SelectAnswer(i, ans))
	}
	for range answers {
		require.NoError(t, a.Advance())
	}
}

func TestScoreAnswersRounding(t *testing.T) {
	qs := questionsWithKey(10)

	sevenRight := []int{0, 0, 0, 0, 0, 0, 0, 1, 1, 1}
	assert.Equal(t, 70, ScoreAnswers(qs, sevenRight))

	sixRight := []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1}
	assert.Equal(t, 60, ScoreAnswers(qs, sixRight))

	// 2/3 -> 66.67 rounds to 67
	assert.Equal(t, 67, ScoreAnswers(questionsWithKey(3), []int{0, 0, 1}))

	// short vectors count missing answers as wrong
	assert.Equal(t, 50, ScoreAnswers(questionsWithKey(2), []int{0}))
	assert.Equal(t, 0, ScoreAnswers(nil, nil))
}

func TestAttemptCompletionCallbackOnce(t *testing.T) {
	qs := questionsWithKey(3)
	calls := 0
	var got int
	a, err := NewQuizAttempt(qs, func(score int) {
		calls++
		got = score
	})
	require.NoError(t, err)

	finishAttempt(t, a, []int{0, 0, 1})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 67, got)

	// finished attempts refuse further navigation
	assert.ErrorIs(t, a.Advance(), ErrAttemptFinished)
	assert.ErrorIs(t, a.SelectAnswer(0, 0), ErrAttemptFinished)
	assert.Equal(t, 1, calls)

	score, done := a.Score()
	assert.True(t, done)
	assert.Equal(t, 67, score)
	assert.False(t, a.Passed())
}

func TestAdvanceRequiresAnswer(t *testing.T) {
	a, err := NewQuizAttempt(questionsWithKey(2), nil)
	require.NoError(t, err)

	assert.ErrorIs(t, a.Advance(), ErrAnswerRequired)
	require.NoError(t, a.SelectAnswer(0, 1))
	require.NoError(t, a.Advance())
	assert.Equal(t, 1, a.Current())
}

func TestRetreatKeepsAnswers(t *testing.T) {
	a, err := NewQuizAttempt(questionsWithKey(3), nil)
	require.NoError(t, err)

	require.NoError(t, a.SelectAnswer(0, 0))
	require.NoError(t, a.Advance())
	a.Retreat()
	assert.Equal(t, 0, a.Current())

	// revising the answer on the current question is allowed
	require.NoError(t, a.SelectAnswer(0, 2))
	require.NoError(t, a.Advance())

	// retreat at the first question is a no-op
	a.Retreat()
	a.Retreat()
	assert.Equal(t, 0, a.Current())
}

func TestResetClearsSelections(t *testing.T) {
	qs := questionsWithKey(2)
	calls := 0
	a, err := NewQuizAttempt(qs, func(int) { calls++ })
	require.NoError(t, err)

	finishAttempt(t, a, []int{0, 0})
	assert.Equal(t, 1, calls)

	a.Reset()
	assert.Equal(t, 0, a.Current())
	_, done := a.Score()
	assert.False(t, done)
	assert.ErrorIs(t, a.Advance(), ErrAnswerRequired)

	// a retake fires the callback again
	finishAttempt(t, a, []int{0, 1})
	assert.Equal(t, 2, calls)
}

func TestAttemptPassThreshold(t *testing.T) {
	qs := questionsWithKey(10)

	pass, err := NewQuizAttempt(qs, nil)
	require.NoError(t, err)
	finishAttempt(t, pass, []int{0, 0, 0, 0, 0, 0, 0, 1, 1, 1})
	assert.True(t, pass.Passed())

	fail, err := NewQuizAttempt(qs, nil)
	require.NoError(t, err)
	finishAttempt(t, fail, []int{0, 0, 0, 0, 0, 0, 1, 1, 1, 1})
	assert.False(t, fail.Passed())
}

func TestAttemptInputValidation(t *testing.T) {
	_, err := NewQuizAttempt(nil, nil)
	assert.ErrorIs(t, err, ErrNoQuestions)

	a, err := NewQuizAttempt(questionsWithKey(1), nil)
	require.NoError(t, err)
	assert.ErrorIs(t, a.SelectAnswer(5, 0), ErrQuestionIndex)
	assert.ErrorIs(t, a.SelectAnswer(0, 9), ErrOptionIndex)
	assert.ErrorIs(t, a.SelectAnswer(-1, 0), ErrQuestionIndex)
	assert.ErrorIs(t, a.SelectAnswer(0, -2), ErrOptionIndex)
}
