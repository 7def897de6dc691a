// Package collection models the list payloads returned by the fitness backend.
//
// A list endpoint answers either with a bare JSON array of records or with an
// envelope object whose "results" member holds that array. Decode inspects the
// payload and tags it with the shape it found instead of guessing at use sites.
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Shape discriminates the recognised forms of a collection payload.
type Shape int

const (
	// ShapeUnrecognized is any well-formed JSON value that is neither a bare
	// array nor an object with an array-valued "results" member.
	ShapeUnrecognized Shape = iota
	// ShapeArray is a bare array of records.
	ShapeArray
	// ShapeEnvelope is an object exposing the records under "results".
	ShapeEnvelope
)

// String returns the shape name used in logs.
func (s Shape) String() string {
	switch s {
	case ShapeArray:
		return "array"
	case ShapeEnvelope:
		return "envelope"
	default:
		return "unrecognized"
	}
}

// Response is a decoded collection payload.
type Response struct {
	Shape   Shape
	Records []Record
}

// Decode parses a collection payload. Syntactically invalid JSON is an error;
// valid JSON of an unrecognised shape decodes to ShapeUnrecognized with no records.
func Decode(data []byte) (Response, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Response{}, fmt.Errorf("decoding collection response: %w", err)
	}

	raw = bytes.TrimSpace(raw)
	switch raw[0] {
	case '[':
		records, err := decodeRecords(raw)
		if err != nil {
			return Response{}, err
		}
		return Response{Shape: ShapeArray, Records: records}, nil
	case '{':
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(raw, &envelope); err != nil {
			return Response{}, fmt.Errorf("decoding collection envelope: %w", err)
		}
		results, ok := envelope["results"]
		results = bytes.TrimSpace(results)
		if !ok || len(results) == 0 || results[0] != '[' {
			return Response{Shape: ShapeUnrecognized}, nil
		}
		records, err := decodeRecords(results)
		if err != nil {
			return Response{}, err
		}
		return Response{Shape: ShapeEnvelope, Records: records}, nil
	}

	return Response{Shape: ShapeUnrecognized}, nil
}

// Unwrap returns the record sequence carried by the response. It is never nil.
func (r Response) Unwrap() []Record {
	if r.Shape == ShapeUnrecognized || r.Records == nil {
		return []Record{}
	}
	return r.Records
}

func decodeRecords(data []byte) ([]Record, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding collection records: %w", err)
	}

	records := make([]Record, 0, len(items))
	for _, item := range items {
		records = append(records, NewRecord(item))
	}
	return records, nil
}
