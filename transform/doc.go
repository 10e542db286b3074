// Package transform defines the Transformer stage of a pipeline.
//
// A Transformer receives a record and returns the record the next stage
// should see. It may mutate the record it was given (every pipeline
// works on its own clone) or return a different one. Returning an error
// stops the remaining transformers of that pipeline; the presenter then
// runs on the last record that was produced successfully.
package transform
