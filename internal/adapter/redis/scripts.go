package redis

import goredis "github.com/redis/go-redis/v9"

// createPollScript allocates the next poll id and stores the poll hash and
// index entry in one step.
// KEYS: polls:seq, polls:index. ARGV: key prefix, question, created_at (unix ms).
var createPollScript = goredis.NewScript(`
local id = redis.call('INCR', KEYS[1])
redis.call('HSET', ARGV[1] .. id, 'question', ARGV[2], 'created_at', ARGV[3])
redis.call('ZADD', KEYS[2], id, id)
return id
`)

// listPollsScript returns id, question, created_at triples in ascending id order.
// KEYS: polls:index. ARGV: key prefix.
var listPollsScript = goredis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
local out = {}
for _, id in ipairs(ids) do
  local h = redis.call('HMGET', ARGV[1] .. id, 'question', 'created_at')
  table.insert(out, id)
  table.insert(out, h[1])
  table.insert(out, h[2])
end
return out
`)

// createResponseScript returns 0 when the poll hash is missing, otherwise the new response id.
// KEYS: poll:{id}, responses:seq, poll:{id}:responses.
// ARGV: key prefix, answer, sentiment, created_at (unix ms), poll id.
var createResponseScript = goredis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
  return 0
end
local id = redis.call('INCR', KEYS[2])
redis.call('HSET', ARGV[1] .. id, 'poll_id', ARGV[5], 'answer', ARGV[2], 'sentiment', ARGV[3], 'created_at', ARGV[4])
redis.call('ZADD', KEYS[3], id, id)
return id
`)

// listResponsesScript returns id, answer, sentiment, created_at quadruples in ascending id order.
// KEYS: poll:{id}:responses. ARGV: key prefix.
var listResponsesScript = goredis.NewScript(`
local ids = redis.call('ZRANGE', KEYS[1], 0, -1)
local out = {}
for _, id in ipairs(ids) do
  local h = redis.call('HMGET', ARGV[1] .. id, 'answer', 'sentiment', 'created_at')
  table.insert(out, id)
  table.insert(out, h[1])
  table.insert(out, h[2])
  table.insert(out, h[3])
end
return out
`)
