// Package generation defines the boundary between the study application and
// the AI/LLM service that turns document text into trivia questions.
//
// It owns the provider-independent parts of the pipeline: normalizing the
// document excerpt, rendering the fixed instruction prompt, stripping the
// markdown fencing models like to add, and the parse-then-validate gates that
// bind the model output to the question schema. Provider adapters (see
// internal/platform/gemini) implement the Generator interface on top of it.
package generation
