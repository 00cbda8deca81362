// Package study holds in-memory study sessions: the document a user uploaded,
// the questions generated from it and the flashcard deck and quiz that walk
// those questions.
//
// A Session owns one GenerationStatus value, so at most one generation is in
// flight per session. Generation runs in the background on the task runner;
// a failed generation leaves the previous questions in place.
package study
