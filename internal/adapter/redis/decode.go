package redis

import (
	"fmt"
	"strconv"
	"time"

	"github.com/pscheid92/pollpulse/internal/domain"
)

const (
	pollTupleSize     = 3
	responseTupleSize = 4
)

func parsePolls(raw []any) ([]domain.Poll, error) {
	if len(raw)%pollTupleSize != 0 {
		return nil, fmt.Errorf("unexpected poll reply length %d", len(raw))
	}

	polls := make([]domain.Poll, 0, len(raw)/pollTupleSize)
	for i := 0; i < len(raw); i += pollTupleSize {
		id, err := parseInt(raw[i])
		if err != nil {
			return nil, fmt.Errorf("invalid poll id: %w", err)
		}
		createdAt, err := parseMillis(raw[i+2])
		if err != nil {
			return nil, fmt.Errorf("invalid created_at for poll %d: %w", id, err)
		}
		polls = append(polls, domain.Poll{
			ID:        id,
			Question:  asString(raw[i+1]),
			CreatedAt: createdAt,
		})
	}
	return polls, nil
}

func parseResponses(pollID int64, raw []any) ([]domain.Response, error) {
	if len(raw)%responseTupleSize != 0 {
		return nil, fmt.Errorf("unexpected response reply length %d", len(raw))
	}

	responses := make([]domain.Response, 0, len(raw)/responseTupleSize)
	for i := 0; i < len(raw); i += responseTupleSize {
		id, err := parseInt(raw[i])
		if err != nil {
			return nil, fmt.Errorf("invalid response id: %w", err)
		}
		label, err := domain.ParseSentimentLabel(asString(raw[i+2]))
		if err != nil {
			return nil, fmt.Errorf("response %d: %w", id, err)
		}
		createdAt, err := parseMillis(raw[i+3])
		if err != nil {
			return nil, fmt.Errorf("invalid created_at for response %d: %w", id, err)
		}
		responses = append(responses, domain.Response{
			ID:        id,
			PollID:    pollID,
			Answer:    asString(raw[i+1]),
			Sentiment: label,
			CreatedAt: createdAt,
		})
	}
	return responses, nil
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func parseInt(v any) (int64, error) {
	if n, ok := v.(int64); ok {
		return n, nil
	}
	return strconv.ParseInt(asString(v), 10, 64)
}

func parseMillis(v any) (time.Time, error) {
	ms, err := parseInt(v)
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms).UTC(), nil
}
