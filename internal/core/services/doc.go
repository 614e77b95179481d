// Package services contains the core business logic, wired to the outside
// world exclusively through the driven ports. IngestService runs the
// document pipeline (extract, chunk, embed, index), AnswerService runs the
// question pipeline (retrieve, score, prompt, generate), and the history
// and user services manage the metadata around them.
package services
