// Package openai implements the encoder contract on top of the OpenAI
// Embeddings API.
package openai

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"

	"github.com/hupe1980/courtscout/core"
)

// Options configure the OpenAI encoder.
type Options struct {
	Model string
	// Dimensions truncates the returned vectors when > 0. Supported by the
	// text-embedding-3 model family only.
	Dimensions int64
}

// Encoder produces embeddings via the OpenAI API. All vectors produced by one
// Encoder share the same model and dimensionality, which is required for the
// similarity arithmetic downstream.
type Encoder struct {
	client *openai.Client
	opts   Options
}

var _ core.Encoder = (*Encoder)(nil)

// NewEncoder creates a new OpenAI encoder using the official client.
// Credentials are taken from the environment (OPENAI_API_KEY).
func NewEncoder(optFns ...func(o *Options)) *Encoder {
	client := openai.NewClient()
	return NewEncoderFromClient(&client, optFns...)
}

// NewEncoderFromClient creates a new OpenAI encoder from an existing client.
func NewEncoderFromClient(client *openai.Client, optFns ...func(o *Options)) *Encoder {
	opts := Options{
		Model: openai.EmbeddingModelTextEmbedding3Small,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Encoder{client: client, opts: opts}
}

// Encode implements core.Encoder.
func (e *Encoder) Encode(ctx context.Context, text string) ([]float32, error) {
	params := openai.EmbeddingNewParams{
		Model: e.opts.Model,
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(text),
		},
	}
	if e.opts.Dimensions > 0 {
		params.Dimensions = openai.Int(e.opts.Dimensions)
	}

	resp, err := e.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, &core.EncodingError{Text: text, Err: fmt.Errorf("create embedding: %w", err)}
	}

	if len(resp.Data) == 0 {
		return nil, &core.EncodingError{Text: text, Err: fmt.Errorf("empty embedding response")}
	}

	raw := resp.Data[0].Embedding
	vec := make([]float32, len(raw))
	for i, v := range raw {
		vec[i] = float32(v)
	}

	return vec, nil
}
