// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package textdiff

import (
	"difflens.dev/difflens"
	"difflens.dev/difflens/internal/config"
)

// Option configures the behavior of [Unified] and [UnifiedBytes]. It's an alias of
// [difflens.Option]: [difflens.Context] and [difflens.Optimal] apply here too.
type Option = difflens.Option

// Threshold sets the similarity ratio, in [0, 1], above which a candidate Delete/Insert line pair
// is rendered as a single refined Replace line with inline highlighting instead of a separate
// Delete and Insert. The default is 0.5.
func Threshold(t float64) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Threshold = t
		return config.Threshold
	}
}

// TokenSimilarity selects the token-based similarity ratio (1 - D/(N+M), where D is the Myers edit
// distance over the lines' tokens) instead of the default character-based ratio for deciding
// whether a Delete/Insert pair should be refined into a Replace.
func TokenSimilarity() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Similarity = config.SimilarityToken
		return config.Similarity
	}
}
