package model

import (
	"errors"
	"math"
)

// PassThreshold is the score required to pass a quiz. The same threshold
// gates bulk section completion and certificate issuance.
const PassThreshold = 70

const unanswered = -1

var (
	ErrAnswerRequired  = errors.New("current question has no selected answer")
	ErrNoQuestions     = errors.New("quiz has no questions")
	ErrQuestionIndex   = errors.New("question index out of range")
	ErrOptionIndex     = errors.New("option index out of range")
	ErrAttemptFinished = errors.New("attempt already finished")
)

// QuizAttempt walks an ordered question list one question at a time. It is
// purely in-memory: abandoning an attempt loses its state, only the final
// score is propagated through the completion callback.
type QuizAttempt struct {
	questions  []QuizQuestion
	current    int
	selected   []int
	onComplete func(score int)
	finished   bool
	score      int
}

func NewQuizAttempt(questions []QuizQuestion, onComplete func(score int)) (*QuizAttempt, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	selected := make([]int, len(questions))
	for i := range selected {
		selected[i] = unanswered
	}
	return &QuizAttempt{
		questions:  questions,
		selected:   selected,
		onComplete: onComplete,
	}, nil
}

// Current returns the index of the question being shown.
func (a *QuizAttempt) Current() int {
	return a.current
}

// CurrentQuestion returns the question being shown.
func (a *QuizAttempt) CurrentQuestion() QuizQuestion {
	return a.questions[a.current]
}

// SelectAnswer records the chosen option for a question. Answers may be
// revised any number of times before the attempt finishes.
func (a *QuizAttempt) SelectAnswer(questionIndex, optionIndex int) error {
	if a.finished {
		return ErrAttemptFinished
	}
	if questionIndex < 0 || questionIndex >= len(a.questions) {
		return ErrQuestionIndex
	}
	if optionIndex < 0 || optionIndex >= len(a.questions[questionIndex].Options) {
		return ErrOptionIndex
	}
	a.selected[questionIndex] = optionIndex
	return nil
}

// Advance moves to the next question. On the last question it computes the
// final score and fires the completion callback exactly once. Advancing
// without an answer on the current question is refused.
func (a *QuizAttempt) Advance() error {
	if a.finished {
		return ErrAttemptFinished
	}
	if a.selected[a.current] == unanswered {
		return ErrAnswerRequired
	}
	if a.current < len(a.questions)-1 {
		a.current++
		return nil
	}

	a.score = ScoreAnswers(a.questions, a.selected)
	a.finished = true
	if a.onComplete != nil {
		a.onComplete(a.score)
	}
	return nil
}

// Retreat moves to the previous question without clearing answers.
func (a *QuizAttempt) Retreat() {
	if a.finished || a.current == 0 {
		return
	}
	a.current--
}

// Reset clears all selections and returns to the first question, for a
// retake.
func (a *QuizAttempt) Reset() {
	for i := range a.selected {
		a.selected[i] = unanswered
	}
	a.current = 0
	a.finished = false
	a.score = 0
}

// Score returns the final score and whether the attempt finished.
func (a *QuizAttempt) Score() (int, bool) {
	return a.score, a.finished
}

// Passed reports whether a finished attempt met the pass threshold.
func (a *QuizAttempt) Passed() bool {
	return a.finished && a.score >= PassThreshold
}

// ScoreAnswers computes the rounded percentage of correct answers for a
// selection vector aligned to the question order. Unanswered positions
// count as wrong. Server-side grading of submitted vectors uses the same
// formula as the interactive attempt.
func ScoreAnswers(questions []QuizQuestion, selected []int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for i, q := range questions {
		if i < len(selected) && selected[i] == q.CorrectAnswer {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}
