package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invoiceforge/internal/domain"
)

type fakeObjects struct {
	objects   map[string][]byte
	getErr    error
	headErr   error
	gotBucket string
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.gotBucket = aws.ToString(in.Bucket)
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjects) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func TestDownload_DefaultBucket(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{"logos/acme.png": []byte("png-bytes")}}
	store := newAssetStore(fake, "assets", 0)

	data, err := store.Download(context.Background(), "", "logos/acme.png")

	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
	assert.Equal(t, "assets", fake.gotBucket)
}

func TestDownload_ExplicitBucket(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{"k": []byte("x")}}
	store := newAssetStore(fake, "assets", 0)

	_, err := store.Download(context.Background(), "other", "k")

	require.NoError(t, err)
	assert.Equal(t, "other", fake.gotBucket)
}

func TestDownload_MissingKey(t *testing.T) {
	store := newAssetStore(&fakeObjects{}, "assets", 0)

	_, err := store.Download(context.Background(), "", "nope.png")

	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestDownload_GenericNotFoundCode(t *testing.T) {
	fake := &fakeObjects{getErr: &smithy.GenericAPIError{Code: "NotFound", Message: "gone"}}
	store := newAssetStore(fake, "assets", 0)

	_, err := store.Download(context.Background(), "", "k")

	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestDownload_OtherErrorsWrapped(t *testing.T) {
	boom := errors.New("connection reset")
	store := newAssetStore(&fakeObjects{getErr: boom}, "assets", 0)

	_, err := store.Download(context.Background(), "", "k")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestDownload_SizeCap(t *testing.T) {
	fake := &fakeObjects{objects: map[string][]byte{
		"small": bytes.Repeat([]byte("a"), 10),
		"big":   bytes.Repeat([]byte("a"), 11),
	}}
	store := newAssetStore(fake, "assets", 10)

	_, err := store.Download(context.Background(), "", "small")
	require.NoError(t, err)

	_, err = store.Download(context.Background(), "", "big")
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestPing(t *testing.T) {
	ok := newAssetStore(&fakeObjects{}, "assets", 0)
	assert.NoError(t, ok.Ping(context.Background()))

	down := newAssetStore(&fakeObjects{headErr: errors.New("forbidden")}, "assets", 0)
	assert.Error(t, down.Ping(context.Background()))
	assert.Equal(t, "assets", down.Bucket())
}
