package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChrisSpescha/EcommerceWebsite/internal/core/domain"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

// createTestFileHeader builds a multipart.FileHeader the way echo hands it over.
func createTestFileHeader(t *testing.T, filename string, size int64, content []byte) *multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	h.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(h)
	require.NoError(t, err)
	_, _ = part.Write(content)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })

	require.NotEmpty(t, form.File["image"])
	fh := form.File["image"][0]
	fh.Size = size
	return fh
}

func TestValidateImage_PNG(t *testing.T) {
	fh := createTestFileHeader(t, "duck.png", int64(len(pngHeader)), pngHeader)

	ct, err := ValidateImage(fh)
	require.NoError(t, err)
	assert.Equal(t, "image/png", ct)
}

func TestValidateImage_TooLarge(t *testing.T) {
	fh := createTestFileHeader(t, "huge.png", 11*1024*1024, pngHeader)

	_, err := ValidateImage(fh)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidateImage_SniffsContent(t *testing.T) {
	// Named .png and declared image/png, but the bytes are text.
	content := []byte("definitely not an image")
	fh := createTestFileHeader(t, "fake.png", int64(len(content)), content)

	_, err := ValidateImage(fh)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

type mockPutter struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (m *mockPutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.input = in
	m.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

type mockPresigner struct {
	expires time.Duration
}

func (m *mockPresigner) PresignGetObject(_ context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	opts := &s3.PresignOptions{}
	for _, fn := range optFns {
		fn(opts)
	}
	m.expires = opts.Expires
	return &v4.PresignedHTTPRequest{URL: "https://" + *in.Bucket + ".s3.example.com/" + *in.Key + "?sig=1"}, nil
}

func TestS3ImageStore_UploadAndURL(t *testing.T) {
	putter := &mockPutter{}
	presigner := &mockPresigner{}
	store := NewS3ImageStoreWithClients(putter, presigner, "listing-images", 0)

	key, err := store.Upload(context.Background(), "duck.png", "image/png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "listings/"))
	assert.True(t, strings.HasSuffix(key, ".png"))
	assert.Equal(t, "listing-images", *putter.input.Bucket)
	assert.Equal(t, "image/png", *putter.input.ContentType)
	assert.Equal(t, pngHeader, putter.body)

	url, err := store.URL(context.Background(), key)
	require.NoError(t, err)
	assert.Contains(t, url, key)
	assert.Equal(t, time.Hour, presigner.expires)
}

func TestS3ImageStore_UploadError(t *testing.T) {
	store := NewS3ImageStoreWithClients(&mockPutter{err: errors.New("access denied")}, &mockPresigner{}, "b", time.Minute)

	_, err := store.Upload(context.Background(), "duck.png", "image/png", bytes.NewReader(pngHeader))
	assert.Error(t, err)
}
