package store

import(
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

func newGcsClient(ctx context.Context, credentials string) (*storage.Client, error) {
	opts := []option.ClientOption{}
	if credentials != "" {
		opts = append(opts, option.WithCredentialsFile(credentials))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return client, nil
}

// gcsReader closes the client along with the object reader.
type gcsReader struct {
	*storage.Reader
	client *storage.Client
}

func (r gcsReader)Close() error {
	err := r.Reader.Close()
	if cerr := r.client.Close(); err == nil {
		err = cerr
	}
	return err
}

type gcsWriter struct {
	*storage.Writer
	client *storage.Client
}

// Close finishes the upload; the object only exists once this succeeds.
func (w gcsWriter)Close() error {
	err := w.Writer.Close()
	if cerr := w.client.Close(); err == nil {
		err = cerr
	}
	return err
}

func openGcs(ctx context.Context, bucket, name, credentials string) (io.ReadCloser, error) {
	client, err := newGcsClient(ctx, credentials)
	if err != nil {
		return nil, err
	}

	objectReader, err := client.Bucket(bucket).Object(name).NewReader(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("open+r 'gs://%s/%s': %w", bucket, name, err)
	}
	return gcsReader{Reader: objectReader, client: client}, nil
}

func createGcs(ctx context.Context, bucket, name, credentials string) (io.WriteCloser, error) {
	client, err := newGcsClient(ctx, credentials)
	if err != nil {
		return nil, err
	}

	objectWriter := client.Bucket(bucket).Object(name).NewWriter(ctx)
	return gcsWriter{Writer: objectWriter, client: client}, nil
}
