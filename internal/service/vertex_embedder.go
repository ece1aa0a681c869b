package service

import (
	"context"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/docbot-ai/answer-action/internal/config"
)

// Embedding task types understood by the Vertex text-embedding models.
// Questions are embedded as queries, corpus documents as documents; mixing
// the two degrades similarity scores.
const (
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
)

// VertexEmbedder generates embeddings with a Vertex AI text-embedding model.
// The returned vectors are unit-length, which the ranker relies on.
type VertexEmbedder struct {
	client   *aiplatform.PredictionClient
	endpoint string
	taskType string
}

// NewVertexEmbedder creates an embedder bound to one model and task type.
func NewVertexEmbedder(ctx context.Context, cfg config.Config, taskType string) (*VertexEmbedder, error) {
	opts := []option.ClientOption{
		option.WithEndpoint(cfg.Location + "-aiplatform.googleapis.com:443"),
	}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := aiplatform.NewPredictionClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create prediction client: %w", err)
	}

	endpoint := fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
		cfg.Project, cfg.Location, cfg.EmbeddingModel)

	return &VertexEmbedder{
		client:   client,
		endpoint: endpoint,
		taskType: taskType,
	}, nil
}

// Embed generates the embedding vector for a single input text.
func (v *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	instance, err := structpb.NewStruct(map[string]interface{}{
		"content":   text,
		"task_type": v.taskType,
	})
	if err != nil {
		return nil, fmt.Errorf("build embed instance: %w", err)
	}

	resp, err := v.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:  v.endpoint,
		Instances: []*structpb.Value{structpb.NewStructValue(instance)},
	})
	if err != nil {
		return nil, fmt.Errorf("predict embedding: %w", err)
	}
	if len(resp.Predictions) == 0 {
		return nil, fmt.Errorf("no embedding returned")
	}

	values := resp.Predictions[0].GetStructValue().
		GetFields()["embeddings"].GetStructValue().
		GetFields()["values"].GetListValue().GetValues()
	if len(values) == 0 {
		return nil, fmt.Errorf("embedding response has no values")
	}

	vec := make([]float32, len(values))
	for i, val := range values {
		vec[i] = float32(val.GetNumberValue())
	}
	return vec, nil
}

// Close releases the underlying Vertex AI client.
func (v *VertexEmbedder) Close() error {
	return v.client.Close()
}
