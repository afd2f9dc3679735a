package domain

type NextPassFunc func(context *PassContext) error

// Pass the pipeline is internally a chain of "passes", each one a single step of processing an upload. A pass is
// able to:
// - read what the previous passes stored in the context
// - store its own results for the passes which follow
// - notify the progress listener
// - stop the chain by returning an error
// Passes run strictly one after another; a pass never runs concurrently with another pass of the same run.
type Pass interface {
	// Apply implements a pass.
	// `nextPassFunc` should always be called when returning from the function (unless we want to stop the chain).
	Apply(context *PassContext, nextPassFunc NextPassFunc) error
}
