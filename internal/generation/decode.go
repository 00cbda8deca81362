package generation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/sikum-app/sikum-api/internal/domain"
)

// fenceMarkers are removed wherever they occur in the model output, longest
// first so a language tag never survives its backticks.
var fenceMarkers = []string{"```json", "```javascript", "```", "`"}

// Validation messages surfaced as ProcessingError descriptions.
const (
	msgNotArray       = "response is not a JSON array"
	msgInvalidArray   = "invalid JSON array structure"
	msgNoQuestions    = "no questions were generated"
	msgSchemaMismatch = "response does not match the question schema"
)

// ErrSchemaMismatch is matched by every SchemaError.
var ErrSchemaMismatch = errors.New(msgSchemaMismatch)

// SchemaError describes why an element of the model output could not be bound
// to the question schema.
type SchemaError struct {
	// Index is the position of the offending element, or -1 when the array
	// as a whole failed to decode.
	Index int
	// Reason is the underlying failure's description.
	Reason string
	Err    error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", msgSchemaMismatch, e.Reason)
	}
	return fmt.Sprintf("%s: question %d: %s", msgSchemaMismatch, e.Index, e.Reason)
}

// Unwrap returns the underlying decode or validation error.
func (e *SchemaError) Unwrap() error {
	return e.Err
}

// Is makes every SchemaError match ErrSchemaMismatch.
func (e *SchemaError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// questionSchema is the wire shape of one question in the model output.
// Pointers distinguish a missing or null field from an empty string.
type questionSchema struct {
	Question         *string   `json:"question"         validate:"required"`
	CorrectAnswer    *string   `json:"correctAnswer"    validate:"required"`
	IncorrectAnswers []*string `json:"incorrectAnswers" validate:"required,dive,required"`
}

// DecodeOptions tunes schema binding.
type DecodeOptions struct {
	// IncorrectAnswerCount, when positive, requires every question to carry
	// exactly this many incorrect answers. Zero tolerates any count.
	IncorrectAnswerCount int
}

var schemaValidator = newSchemaValidator()

func newSchemaValidator() *validator.Validate {
	v := validator.New()
	// Report wire field names rather than Go field names
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// StripFences removes surrounding whitespace and every markdown code-fence
// marker from text, wherever the markers occur.
func StripFences(text string) string {
	cleaned := strings.TrimSpace(text)
	for _, marker := range fenceMarkers {
		cleaned = strings.ReplaceAll(cleaned, marker, "")
	}
	return strings.TrimSpace(cleaned)
}

// DecodeQuestions binds fence-stripped model output to the question schema.
//
// The gates run in order and each catches a different class of malformed
// input:
//  1. the text must look like a JSON array          -> ProcessingError
//  2. the text must be valid UTF-8                  -> ErrInvalidData
//  3. the bytes must be a JSON array of objects     -> ProcessingError
//  4. every object must bind to the schema          -> *SchemaError
//  5. at least one question must be present         -> ProcessingError
//
// Each decoded question gets a fresh identity.
func DecodeQuestions(text string, opts DecodeOptions) ([]*domain.TriviaQuestion, error) {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return nil, NewProcessingError(msgNotArray)
	}

	if !utf8.ValidString(trimmed) {
		return nil, ErrInvalidData
	}
	data := []byte(trimmed)

	var generic []map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, NewProcessingError(msgInvalidArray)
	}
	for _, obj := range generic {
		if obj == nil {
			return nil, NewProcessingError(msgInvalidArray)
		}
	}

	var wire []questionSchema
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &SchemaError{Index: -1, Reason: err.Error(), Err: err}
	}

	questions := make([]*domain.TriviaQuestion, 0, len(wire))
	for i := range wire {
		q, err := bindQuestion(wire[i], opts)
		if err != nil {
			return nil, &SchemaError{Index: i, Reason: err.Error(), Err: err}
		}
		questions = append(questions, q)
	}

	if len(questions) == 0 {
		return nil, NewProcessingError(msgNoQuestions)
	}

	return questions, nil
}

// bindQuestion validates one wire record and converts it to a domain question.
func bindQuestion(s questionSchema, opts DecodeOptions) (*domain.TriviaQuestion, error) {
	if err := schemaValidator.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return nil, fmt.Errorf("missing or null field %q: %w", verrs[0].Field(), err)
		}
		return nil, err
	}

	incorrect := make([]string, len(s.IncorrectAnswers))
	for i, a := range s.IncorrectAnswers {
		incorrect[i] = *a
	}

	if opts.IncorrectAnswerCount > 0 && len(incorrect) != opts.IncorrectAnswerCount {
		return nil, fmt.Errorf("expected %d incorrect answers, got %d",
			opts.IncorrectAnswerCount, len(incorrect))
	}

	q := domain.NewTriviaQuestion(*s.Question, *s.CorrectAnswer, incorrect)
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return q, nil
}
