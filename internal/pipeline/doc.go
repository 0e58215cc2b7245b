// Package pipeline runs a scan as a sequence of steps.
//
// A Job starts with a target URL (and optionally page text supplied by the
// caller) and passes through load, extract, score, persist and decide
// steps. Each step fills in part of the Job. BatchProcessor runs many jobs
// concurrently with errgroup, each on a fresh Pipeline.
package pipeline
