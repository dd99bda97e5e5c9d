package fetch

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/oarkflow/cikmapper/retriever"
)

// ErrInvalidPayload is returned when the body is not JSON or lacks the fields/data arrays.
var ErrInvalidPayload = errors.New("invalid payload")

// Payload is the decoded upstream document.
type Payload struct {
	Fields []string
	Data   []retriever.Record
}

// ParsePayload decodes body. Numbers decode as float64, null as nil.
func ParsePayload(body []byte) (*Payload, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidPayload)
	}
	root := gjson.ParseBytes(body)
	fields := root.Get("fields")
	data := root.Get("data")
	if !fields.IsArray() {
		return nil, fmt.Errorf("%w: missing \"fields\" array", ErrInvalidPayload)
	}
	if !data.IsArray() {
		return nil, fmt.Errorf("%w: missing \"data\" array", ErrInvalidPayload)
	}

	p := &Payload{}
	for _, f := range fields.Array() {
		p.Fields = append(p.Fields, f.String())
	}

	var rowErr error
	i := 0
	data.ForEach(func(_, row gjson.Result) bool {
		if !row.IsArray() {
			rowErr = fmt.Errorf("%w: data[%d] is not an array", ErrInvalidPayload, i)
			return false
		}
		i++
		cells := row.Array()
		rec := make(retriever.Record, len(cells))
		for j, cell := range cells {
			rec[j] = cell.Value()
		}
		p.Data = append(p.Data, rec)
		return true
	})
	if rowErr != nil {
		return nil, rowErr
	}
	return p, nil
}
