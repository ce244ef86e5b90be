// Copyright 2025 Poiesic Systems
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


package storage

import (
	"github.com/poiesic/gatherit/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, core.IDMUS.Size(id))
	core.IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	var id core.ID
	id, _, err := core.IDMUS.Unmarshal(data)
	return id, err
}

// MarshalPost serializes a Post to bytes.
func MarshalPost(post *core.Post) []byte {
	buf := make([]byte, core.PostMUS.Size(*post))
	core.PostMUS.Marshal(*post, buf)
	return buf
}

// UnmarshalPost deserializes a Post from bytes.
func UnmarshalPost(data []byte) (*core.Post, error) {
	post, _, err := core.PostMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// MarshalFeed serializes a Feed to bytes.
func MarshalFeed(feed *core.Feed) []byte {
	buf := make([]byte, core.FeedMUS.Size(*feed))
	core.FeedMUS.Marshal(*feed, buf)
	return buf
}

// UnmarshalFeed deserializes a Feed from bytes.
func UnmarshalFeed(data []byte) (*core.Feed, error) {
	feed, _, err := core.FeedMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &feed, nil
}

// MarshalFeedPost serializes a FeedPost edge to bytes.
func MarshalFeedPost(edge *core.FeedPost) []byte {
	buf := make([]byte, core.FeedPostMUS.Size(*edge))
	core.FeedPostMUS.Marshal(*edge, buf)
	return buf
}

// UnmarshalFeedPost deserializes a FeedPost edge from bytes.
func UnmarshalFeedPost(data []byte) (*core.FeedPost, error) {
	edge, _, err := core.FeedPostMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &edge, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, core.CheckpointMUS.Size(*checkpoint))
	core.CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := core.CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &checkpoint, nil
}
