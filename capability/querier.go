package capability

import "errors"

// ErrUnsupportedQuery is returned by EmptyQuerier for every request.
var ErrUnsupportedQuery = errors.New("capability: queries are not supported in the sandbox")

// Querier answers raw cross-contract queries.
type Querier interface {
	RawQuery(request []byte) ([]byte, error)
}

// EmptyQuerier exists so a sandboxed invocation has a Querier; ownables run
// in isolation and have nothing to query.
type EmptyQuerier struct{}

func (EmptyQuerier) RawQuery(_ []byte) ([]byte, error) {
	return nil, ErrUnsupportedQuery
}
