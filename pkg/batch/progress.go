// Copyright 2025 walteh LLC
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

package batch

import "context"

// ⏳ Progress is reported after each processed file
type Progress struct {
	Processed int
	Total     int
	Path      string
	Content   *string // new content for content inputs, nil otherwise
	Outcome   Outcome
}

// 📡 ProgressSink receives progress after every file
type ProgressSink interface {
	Report(ctx context.Context, p Progress)
}

// SinkFunc adapts a function to a ProgressSink
type SinkFunc func(ctx context.Context, p Progress)

func (f SinkFunc) Report(ctx context.Context, p Progress) { f(ctx, p) }

type channelSink struct {
	ch chan<- Progress
}

// NewChannelSink sends every progress event to ch. Sends block until the
// receiver is ready or ctx is done; the caller owns and closes ch.
func NewChannelSink(ch chan<- Progress) ProgressSink {
	return &channelSink{ch: ch}
}

func (s *channelSink) Report(ctx context.Context, p Progress) {
	select {
	case s.ch <- p:
	case <-ctx.Done():
	}
}

type nopSink struct{}

func (nopSink) Report(context.Context, Progress) {}
