package msgheader_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/twmb/franz-go/pkg/kgo"

	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/msgheader"
)

func TestBuild(t *testing.T) {
	headers := msgheader.Build(context.Background())
	_, ok := headers[correlationid.Header]
	assert.False(t, ok)

	ctx := correlationid.NewContext(context.Background(), "corr-1")
	headers = msgheader.Build(ctx)
	assert.Equal(t, "corr-1", headers[correlationid.Header])
}

func TestFromRecord(t *testing.T) {
	rec := &kgo.Record{
		Headers: []kgo.RecordHeader{
			{Key: correlationid.Header, Value: []byte("corr-2")},
		},
	}

	ctx := msgheader.FromRecord(context.Background(), rec)
	id, ok := correlationid.FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "corr-2", id)

	ctx = msgheader.FromRecord(context.Background(), &kgo.Record{})
	_, ok = correlationid.FromContext(ctx)
	assert.False(t, ok)
}
