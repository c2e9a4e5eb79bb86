// Package report records what each file task did so a run can be summarised
// once every task has finished.
package report
