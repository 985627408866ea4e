package access

import "github.com/ErlanBelekov/shop-api/internal/auth"

// Request is the transport-neutral view of an incoming call that the
// pipeline inspects and enriches.
type Request struct {
	Method        string
	Path          string
	Authorization string

	// Public is set by the allow-list stage; later stages leave public
	// requests untouched.
	Public   bool
	Token    string
	Identity *auth.Claims
}

// Result is either Continue(req) or Reject(err).
type Result struct {
	req Request
	err error
}

func Continue(req Request) Result { return Result{req: req} }

func Reject(err error) Result { return Result{err: err} }

func (r Result) Rejected() bool { return r.err != nil }

func (r Result) Err() error { return r.err }

func (r Result) Request() Request { return r.req }

// Stage is one named step of the pipeline.
type Stage struct {
	Name string
	Run  func(Request) Result
}

// Pipeline runs stages in order and stops at the first rejection.
type Pipeline []Stage

func (p Pipeline) Run(req Request) Result {
	res := Continue(req)
	for _, s := range p {
		res = s.Run(res.Request())
		if res.Rejected() {
			return res
		}
	}
	return res
}
