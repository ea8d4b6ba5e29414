package flow

// Status is the display state of one asynchronous region.
type Status int

const (
	Loading Status = iota
	Failed
	Ready
)

func (s Status) String() string {
	switch s {
	case Loading:
		return "loading"
	case Failed:
		return "failed"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Region holds exactly one of: loading, an error message, or content.
// Transitions replace the whole value so the states never mix.
type Region[T any] struct {
	status Status
	err    string
	data   T
}

// LoadingRegion returns a region waiting for its first result.
func LoadingRegion[T any]() Region[T] {
	return Region[T]{status: Loading}
}

// FailedRegion returns a region showing err.
func FailedRegion[T any](err error) Region[T] {
	msg := "Something went wrong"
	if err != nil && err.Error() != "" {
		msg = err.Error()
	}
	return Region[T]{status: Failed, err: msg}
}

// ReadyRegion returns a region holding data.
func ReadyRegion[T any](data T) Region[T] {
	return Region[T]{status: Ready, data: data}
}

// Status returns the region state.
func (r Region[T]) Status() Status { return r.status }

// Err returns the error message; empty unless Failed.
func (r Region[T]) Err() string { return r.err }

// Data returns the content and whether the region is Ready.
func (r Region[T]) Data() (T, bool) {
	return r.data, r.status == Ready
}
