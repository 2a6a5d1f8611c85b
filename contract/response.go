package contract

import (
	"encoding/json"
	"fmt"

	"ownable/storage"
)

const (
	MemKey    = "mem"
	ResultKey = "result"
)

type Attribute struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

type Event struct {
	Type       string      `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// Response is the result of an execute call.
type Response struct {
	Attributes []Attribute `json:"attributes"`
	Events     []Event     `json:"events"`
	Data       []byte      `json:"data"`
}

func NewResponse() Response {
	return Response{Attributes: []Attribute{}, Events: []Event{}}
}

func (r Response) AddAttribute(key, value string) Response {
	r.Attributes = append(r.Attributes, Attribute{Key: key, Value: value})
	return r
}

func (r Response) AddEvent(event Event) Response {
	r.Events = append(r.Events, event)
	return r
}

func (r Response) SetData(data []byte) Response {
	r.Data = data
	return r
}

// JSONResponse frames the post-invocation state and the response for the
// host: "mem" holds the JSON state dump and "result" the JSON response.
func JSONResponse(store storage.Store, resp Response) (map[string]string, error) {
	mem, err := json.Marshal(storage.Export(store))
	if err != nil {
		return nil, fmt.Errorf("encode state dump: %w", err)
	}
	result, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("encode response: %w", err)
	}
	return map[string]string{
		MemKey:    string(mem),
		ResultKey: string(result),
	}, nil
}
