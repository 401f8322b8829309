package outbound

// TaskDispatcher runs a task on a shared worker pool.
type TaskDispatcher interface {
	Submit(task func()) error
}
