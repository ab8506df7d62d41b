package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	e := New(TypePostLiked, 4, "alice").WithLikeCount(2)

	assert.NotEmpty(t, e.ID)
	assert.Equal(t, TypePostLiked, e.Type)
	assert.Equal(t, uint(4), e.PostID)
	require.NotNil(t, e.LikeCount)
	assert.Equal(t, int64(2), *e.LikeCount)
	assert.WithinDuration(t, time.Now(), e.OccurredAt, time.Minute)

	raw, err := encode(e)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"likeCount":2`)
	assert.Contains(t, string(raw), `"postId":4`)
}

func TestRedisPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	sub := rdb.Subscribe(ctx, "postboard:events")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	pub := NewRedisPublisher(rdb, "postboard:events")
	require.NoError(t, pub.Publish(ctx, New(TypePostCreated, 1, "")))

	select {
	case msg := <-sub.Channel():
		var got Event
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
		assert.Equal(t, TypePostCreated, got.Type)
		assert.Equal(t, uint(1), got.PostID)
		assert.Nil(t, got.LikeCount)
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestRedisPublisher_ClosedServer(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rdb.Close()
	mr.Close()

	err := NewRedisPublisher(rdb, "postboard:events").Publish(context.Background(), New(TypePostDeleted, 1, ""))
	assert.Error(t, err)
}

func TestRedisPublisher_NilClient(t *testing.T) {
	assert.NoError(t, NewRedisPublisher(nil, "x").Publish(context.Background(), New(TypePostDeleted, 1, "")))
}

type writerStub struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *writerStub) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *writerStub) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisher_Publish(t *testing.T) {
	stub := &writerStub{}
	pub := &KafkaPublisher{w: stub}

	require.NoError(t, pub.Publish(context.Background(), New(TypePostUnliked, 42, "bob").WithLikeCount(0)))
	require.Len(t, stub.msgs, 1)
	assert.Equal(t, "42", string(stub.msgs[0].Key))
	assert.Equal(t, "post.unliked", string(stub.msgs[0].Headers[0].Value))
	assert.Contains(t, string(stub.msgs[0].Value), `"likeCount":0`)

	stub.err = errors.New("broker down")
	assert.ErrorContains(t, pub.Publish(context.Background(), New(TypePostDeleted, 42, "")), "broker down")

	require.NoError(t, pub.Close())
	assert.True(t, stub.closed)
}

func TestNewKafkaPublisher_ParsesBrokers(t *testing.T) {
	pub := NewKafkaPublisher(" k1:9092, ,k2:9092 ", "postboard.events")
	w, ok := pub.w.(*kafka.Writer)
	require.True(t, ok)
	assert.Equal(t, "postboard.events", w.Topic)
	assert.Contains(t, w.Addr.String(), "k1:9092")
	assert.Contains(t, w.Addr.String(), "k2:9092")
	require.NoError(t, pub.Close())
}
