package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"difflens.dev/difflens"
	"difflens.dev/difflens/internal/config"
	"difflens.dev/difflens/textdiff"
)

func TestFromOptions(t *testing.T) {
	tests := []struct {
		name string
		opts []config.Option
		want config.Config
	}{
		{
			name: "default",
			opts: nil,
			want: config.Default,
		},
		{
			name: "context",
			opts: []config.Option{
				difflens.Context(5),
			},
			want: config.Config{
				Context:    5,
				Optimal:    config.Default.Optimal,
				Threshold:  config.Default.Threshold,
				Similarity: config.Default.Similarity,
			},
		},
		{
			name: "optimal",
			opts: []config.Option{
				difflens.Optimal(),
			},
			want: config.Config{
				Context:    config.Default.Context,
				Optimal:    true,
				Threshold:  config.Default.Threshold,
				Similarity: config.Default.Similarity,
			},
		},
		{
			name: "threshold-override",
			opts: []config.Option{
				textdiff.Threshold(0.75),
				difflens.Context(1),
			},
			want: config.Config{
				Context:    1,
				Optimal:    config.Default.Optimal,
				Threshold:  0.75,
				Similarity: config.Default.Similarity,
			},
		},
		{
			name: "everything",
			opts: []config.Option{
				difflens.Context(5),
				difflens.Optimal(),
				textdiff.Threshold(0.4),
				textdiff.TokenSimilarity(),
			},
			want: config.Config{
				Context:    5,
				Optimal:    true,
				Threshold:  0.4,
				Similarity: config.SimilarityToken,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := config.FromOptions(tt.opts, config.Context|config.Optimal|config.Threshold|config.Similarity)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("FromOptions(...) result are different [-want,+got]:\n%s", diff)
			}
		})
	}
}
