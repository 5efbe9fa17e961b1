package pagination

import (
	"context"
	"errors"
	"io"
)

// Record is an opaque structured result record
type Record map[string]interface{}

// RecordStream is a lazy, single-pass sequence of records from an external
// source. Next returns io.EOF when the stream is exhausted; any other error
// is a source failure and ends the stream. Streams are not restartable.
type RecordStream interface {
	Next(ctx context.Context) (Record, error)
}

// CollectPage advances a stream past offset records and collects up to limit
// records into an ordered slice.
//
// Skipped records are discarded. A stream that ends before the offset is
// reached is not an error: the offset simply exceeds the available records and
// an empty page is returned. Source errors propagate to the caller unchanged;
// no retry happens here. The returned slice has length in [0, limit].
func CollectPage(ctx context.Context, stream RecordStream, offset, limit int) ([]Record, error) {
	for i := 0; i < offset; i++ {
		if _, err := stream.Next(ctx); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
	}

	records := make([]Record, 0, limit)
	for len(records) < limit {
		record, err := stream.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

// sliceStream adapts an in-memory slice to the RecordStream interface
type sliceStream struct {
	records []Record
	pos     int
}

// NewSliceStream creates a single-pass stream over a fixed slice of records
func NewSliceStream(records []Record) RecordStream {
	return &sliceStream{records: records}
}

// Next returns the next record or io.EOF when the slice is exhausted
func (s *sliceStream) Next(ctx context.Context) (Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	record := s.records[s.pos]
	s.pos++
	return record, nil
}
