package task

// Context is the capability handed to the main task. It carries the waker
// that futures register for re-polling and the suspension primitive that
// yields control back to the host.
type Context struct {
	exec *Executor
}

// Executor returns the executor driving this task.
func (c *Context) Executor() *Executor {
	return c.exec
}

// Waker returns the task's waker. Futures clone it into wait lists; invoking
// it re-polls the task.
func (c *Context) Waker() *Waker {
	return c.exec.mainWaker
}

// Pend suspends the task until its waker is invoked. This is the only point
// where game code yields control back to the host.
func (c *Context) Pend() {
	e := c.exec
	e.yield <- struct{}{}
	<-e.resume
}

// A Future resolves to a value of type T over one or more polls. Poll either
// returns the value with ok set, or arranges to be woken (by parking the
// context's waker somewhere that will invoke it) and returns ok false.
type Future[T any] interface {
	Poll(ctx *Context) (v T, ok bool)
}

// Await drives f to completion, suspending the task whenever f is pending.
func Await[T any](ctx *Context, f Future[T]) T {
	for {
		if v, ok := f.Poll(ctx); ok {
			return v
		}
		ctx.Pend()
	}
}
