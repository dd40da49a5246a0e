package storage

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakePutter) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.input = params
	if params.Body != nil {
		f.body, _ = io.ReadAll(params.Body)
	}
	if f.err != nil {
		return nil, f.err
	}
	return &s3.PutObjectOutput{}, nil
}

func TestPutSnapshot(t *testing.T) {
	putter := &fakePutter{}
	s := newR2Storage(putter, "settings-bucket", "https://cdn.example.com/", time.Second)

	url, err := s.PutSnapshot(context.Background(), "paraguay_shipping/20260101T000000Z.json", []byte(`{"title":"Envío"}`))
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/snapshots/paraguay_shipping/20260101T000000Z.json", url)
	assert.Equal(t, "settings-bucket", aws.ToString(putter.input.Bucket))
	assert.Equal(t, "snapshots/paraguay_shipping/20260101T000000Z.json", aws.ToString(putter.input.Key))
	assert.Equal(t, "application/json", aws.ToString(putter.input.ContentType))
	assert.Equal(t, `{"title":"Envío"}`, string(putter.body))
}

func TestPutSnapshotWithoutPublicURL(t *testing.T) {
	s := newR2Storage(&fakePutter{}, "b", "", 0)

	key, err := s.PutSnapshot(context.Background(), "../escape.txt", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "snapshots/escape.txt", key)
}

func TestPutSnapshotErrors(t *testing.T) {
	s := newR2Storage(&fakePutter{err: errors.New("boom")}, "b", "", time.Second)

	_, err := s.PutSnapshot(context.Background(), "a.json", nil)
	assert.ErrorContains(t, err, "boom")

	_, err = s.PutSnapshot(context.Background(), "", nil)
	assert.Error(t, err)
}
