package study

import "github.com/sikum-app/sikum-api/internal/domain"

// Deck walks the question list as flashcards. The front of a card is the
// question and the back is the correct answer.
type Deck struct {
	questions []*domain.TriviaQuestion
	index     int
	flipped   bool
}

// DeckView is the client-facing state of a deck. Answer is only present
// while the card is flipped.
type DeckView struct {
	Index       int    `json:"index"`
	Total       int    `json:"total"`
	QuestionID  string `json:"question_id"`
	Question    string `json:"question"`
	Answer      string `json:"answer,omitempty"`
	Flipped     bool   `json:"flipped"`
	HasPrevious bool   `json:"has_previous"`
	HasNext     bool   `json:"has_next"`
}

// NewDeck creates a deck positioned on the first card, face up.
func NewDeck(questions []*domain.TriviaQuestion) *Deck {
	return &Deck{questions: questions}
}

// Len returns the number of cards.
func (d *Deck) Len() int {
	return len(d.questions)
}

// Current returns the card under the cursor.
func (d *Deck) Current() (*domain.TriviaQuestion, bool) {
	if len(d.questions) == 0 {
		return nil, false
	}
	return d.questions[d.index], true
}

// Flip turns the current card over.
func (d *Deck) Flip() {
	if len(d.questions) > 0 {
		d.flipped = !d.flipped
	}
}

// Next moves to the following card and shows its front. It reports false
// and does nothing on the last card.
func (d *Deck) Next() bool {
	if d.index >= len(d.questions)-1 {
		return false
	}
	d.index++
	d.flipped = false
	return true
}

// Previous moves to the preceding card and shows its front. It reports
// false and does nothing on the first card.
func (d *Deck) Previous() bool {
	if d.index == 0 {
		return false
	}
	d.index--
	d.flipped = false
	return true
}

// View returns the deck's client-facing state.
func (d *Deck) View() DeckView {
	view := DeckView{
		Index:       d.index,
		Total:       len(d.questions),
		Flipped:     d.flipped,
		HasPrevious: d.index > 0,
		HasNext:     d.index < len(d.questions)-1,
	}
	if q, ok := d.Current(); ok {
		view.QuestionID = q.ID.String()
		view.Question = q.Question
		if d.flipped {
			view.Answer = q.CorrectAnswer
		}
	}
	return view
}
