package redis

import "strconv"

const (
	pollSeqKey      = "polls:seq"
	pollIndexKey    = "polls:index"
	responseSeqKey  = "responses:seq"
	pollKeyPrefix   = "poll:"
	responseKeyPrefix = "response:"
)

func pollKey(pollID int64) string {
	return pollKeyPrefix + strconv.FormatInt(pollID, 10)
}

func pollResponsesKey(pollID int64) string {
	return pollKey(pollID) + ":responses"
}
